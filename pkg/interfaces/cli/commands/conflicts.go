package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tkoide/drp/pkg/application/services"
	"github.com/tkoide/drp/pkg/domain/entities"
	csvrepo "github.com/tkoide/drp/pkg/infrastructure/repositories/csv"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/sqlite"
	"github.com/tkoide/drp/pkg/interfaces/cli/output"
)

func newConflictsCmd() *cobra.Command {
	var (
		plant           string
		product         string
		schedule        string
		against         string
		baselineProduct string
		format          string
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Flag arrival-window conflicts between a draft and a finalized plan",
		Long: `Compares a draft schedule against a comparison baseline: either a
finalized plan stored for --baseline-product at the same plant, or a plan CSV
given with --against. A draft delivery conflicts with a baseline delivery on
the same date when the baseline arrival falls within the two hours after the
draft arrival.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if against == "" && baselineProduct == "" {
				return fmt.Errorf("either --against or --baseline-product is required")
			}

			loader := csvrepo.NewLoader()
			draftSet, err := loader.LoadSchedule(schedule, decimal.Zero)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Draft %s/%s vs baseline %s/%s\n",
				plant, product, plant, baselineProduct)

			var conflicts []entities.ConflictAnnotation
			if against != "" {
				plan, err := loader.LoadFinalizedPlan(against, entities.Plant(plant), entities.Product(baselineProduct))
				if err != nil {
					return err
				}
				detector := services.NewConflictDetector()
				conflicts = detector.FindConflicts(draftSet, plan.ToEventSet())
			} else {
				conn, err := openDB(cmd)
				if err != nil {
					return err
				}
				defer conn.Close()

				comparison := services.NewComparisonService(sqlite.NewFinalizedPlanRepository(conn))
				plan, err := comparison.FetchBaseline(cmd.Context(), entities.Plant(plant), entities.Product(baselineProduct))
				if err != nil {
					if errors.Is(err, entities.ErrComparisonUnavailable) {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
						return nil
					}
					return err
				}
				conflicts = comparison.CompareSets(draftSet, plan.ToEventSet())
			}

			return output.RenderConflicts(cmd.OutOrStdout(), conflicts, format)
		},
	}

	cmd.Flags().StringVar(&plant, "plant", "", "plant identifier")
	cmd.Flags().StringVar(&product, "product", "", "draft product identifier")
	cmd.Flags().StringVar(&schedule, "schedule", "", "draft schedule CSV")
	cmd.Flags().StringVar(&against, "against", "", "baseline plan CSV (date,time,quantity_per_truck,cancelled,status)")
	cmd.Flags().StringVar(&baselineProduct, "baseline-product", "", "stored baseline product at the same plant")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	cmd.MarkFlagRequired("plant")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("schedule")
	return cmd
}
