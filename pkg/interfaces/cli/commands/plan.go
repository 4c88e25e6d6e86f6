package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkoide/drp/pkg/domain/entities"
	csvrepo "github.com/tkoide/drp/pkg/infrastructure/repositories/csv"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/sqlite"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage stored finalized plans",
	}
	cmd.AddCommand(newPlanImportCmd())
	return cmd
}

func newPlanImportCmd() *cobra.Command {
	var (
		plant   string
		product string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a finalized plan CSV into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := csvrepo.NewLoader().LoadFinalizedPlan(file, entities.Plant(plant), entities.Product(product))
			if err != nil {
				return err
			}

			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := sqlite.NewFinalizedPlanRepository(conn)
			if err := repo.SavePlan(cmd.Context(), plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d deliveries for %s/%s\n", len(plan.Events), plant, product)
			return nil
		},
	}

	cmd.Flags().StringVar(&plant, "plant", "", "plant identifier")
	cmd.Flags().StringVar(&product, "product", "", "product identifier")
	cmd.Flags().StringVar(&file, "file", "", "plan CSV (date,time,quantity_per_truck,cancelled,status)")
	cmd.MarkFlagRequired("plant")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("file")
	return cmd
}
