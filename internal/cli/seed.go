package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labstats/internal/adapters/turso"
	"github.com/emiliopalmerini/labstats/internal/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small demo dataset",
	Long: `Load two users, two experiment types and three experiments with
measurements. Useful for trying the stats commands on a fresh database.

Run "labstats migrate" first.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, func(app *AppContext) error {
		if app.Repos == nil {
			return fmt.Errorf("seed needs a database connection")
		}
		n, err := seedDemo(ctx, app.Repos, time.Now().UTC().Truncate(time.Hour))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d experiments.\n", n)
		return nil
	})
}

type seedExperiment struct {
	user, kind     int
	hoursAgo       int
	description    string
	detections     []float64 // confidences
	concentrations [][2]float64
	general        map[string]string
}

func seedDemo(ctx context.Context, repos *turso.Repositories, now time.Time) (int, error) {
	users := []*domain.User{
		{Name: "Ada Lovelace", Email: "ada@lab.example"},
		{Name: "Rosalind Franklin", Email: "rosalind@lab.example"},
	}
	for _, u := range users {
		if err := repos.Users.Create(ctx, u); err != nil {
			return 0, err
		}
	}

	kinds := []*domain.ExperimentType{{TypeName: "Cell counting"}, {TypeName: "Glucose assay"}}
	for _, k := range kinds {
		if err := repos.ExperimentTypes.Create(ctx, k); err != nil {
			return 0, err
		}
	}

	experiments := []seedExperiment{
		{
			user: 0, kind: 0, hoursAgo: 48, description: "Baseline culture",
			detections:     []float64{0.91, 0.87, 0.78},
			concentrations: [][2]float64{{1.8, 0.9}},
			general:        map[string]string{"microscope": "M-2"},
		},
		{
			user: 0, kind: 1, hoursAgo: 24, description: "Fasting sample",
			concentrations: [][2]float64{{5.2, 0.95}, {5.6, 0.9}, {4.9, 0.85}},
		},
		{
			user: 1, kind: 0, hoursAgo: 2, description: "Treated culture",
			detections: []float64{0.66, 0.72},
			general:    map[string]string{"operator": "rf", "stain": "DAPI"},
		},
	}

	for _, se := range experiments {
		exp := &domain.Experiment{
			ExperimentTime:   now.Add(-time.Duration(se.hoursAgo) * time.Hour),
			UserID:           users[se.user].ID,
			ExperimentTypeID: kinds[se.kind].ID,
			Description:      se.description,
		}
		if err := repos.Experiments.Create(ctx, exp); err != nil {
			return 0, err
		}

		for i, confidence := range se.detections {
			rec := &domain.TargetDetectionRecord{
				ExperimentID: exp.ID,
				GroupNumber:  1,
				ClassName:    "cell",
				Confidence:   confidence,
				X:            float64(10 * i),
				Y:            float64(5 * i),
				Diameter:     12.5,
			}
			if err := repos.Detections.Create(ctx, rec); err != nil {
				return 0, err
			}
		}
		for i, c := range se.concentrations {
			rec := &domain.ConcentrationRecord{ExperimentID: exp.ID, GroupNumber: i + 1, Concentration: c[0], Confidence: c[1]}
			if err := repos.Concentrations.Create(ctx, rec); err != nil {
				return 0, err
			}
		}
		for k, v := range se.general {
			rec := &domain.GeneralRecord{ExperimentID: exp.ID, GroupNumber: 1, Key: k, Value: v}
			if err := repos.General.Create(ctx, rec); err != nil {
				return 0, err
			}
		}
	}

	return len(experiments), nil
}
