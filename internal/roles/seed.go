package roles

import (
	"context"
	"time"
)

// SeedDev fills an empty repo with a small catalog so the matching flow
// works without an external catalog sync. Dev environments only.
func SeedDev(ctx context.Context, repo Repo) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := time.Now().UTC()
	seed := []Role{
		{
			ID:        "role-robotics-ops",
			Title:     "Robotics Operations Specialist",
			Company:   "Aerial Dynamics",
			Domain:    "operations",
			Seniority: "mid",
			WorkMode:  WorkModeOnsite,
			Summary:   "Run field deployments of autonomous inspection drones and keep the fleet calibrated.",
			Tags:      []string{"Deployment", "SLAM", "Operations"},
			CreatedAt: now,
		},
		{
			ID:        "role-backend-go",
			Title:     "Backend Engineer",
			Company:   "Aerial Dynamics",
			Domain:    "engineering",
			Seniority: "senior",
			WorkMode:  WorkModeRemote,
			Summary:   "Build the telemetry ingestion services in Go with Postgres and S3.",
			Tags:      []string{"Go", "Postgres", "S3", "gRPC"},
			CreatedAt: now,
		},
		{
			ID:        "role-flight-data",
			Title:     "Flight Data Analyst",
			Domain:    "data",
			Seniority: "junior",
			WorkMode:  WorkModeHybrid,
			Summary:   "Analyze flight logs and build dashboards for training outcomes.",
			Tags:      []string{"SQL", "Python", "Dashboards"},
			CreatedAt: now,
		},
	}
	for _, role := range seed {
		if err := repo.Upsert(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
