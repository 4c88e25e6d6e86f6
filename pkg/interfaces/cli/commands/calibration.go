package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/sqlite"
)

func newCalibrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Inspect and edit per-plant, per-product calibration settings",
	}
	cmd.AddCommand(newCalibrationShowCmd())
	cmd.AddCommand(newCalibrationSetCmd())
	return cmd
}

func newCalibrationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List stored calibration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := sqlite.NewCalibrationRepository(conn)
			settings, err := repo.ListBioSettings(cmd.Context())
			if err != nil {
				return err
			}
			if len(settings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored settings; built-in defaults apply.")
				return nil
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-10s %-10s %-10s %s\n", "Plant", "Product", "Stock06", "Flow")
			for _, s := range settings {
				fmt.Fprintf(w, "%-10s %-10s %-10s %s\n",
					s.Plant, s.Product, s.Stock06.StringFixed(1), s.Flow.StringFixed(1))
			}
			return nil
		},
	}
}

func newCalibrationSetCmd() *cobra.Command {
	var (
		plant   string
		product string
		stock06 string
		flow    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the setting for a plant/product pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := decimal.NewFromString(stock06)
			if err != nil {
				return fmt.Errorf("parsing --stock06: %w", err)
			}
			flowRate, err := decimal.NewFromString(flow)
			if err != nil {
				return fmt.Errorf("parsing --flow: %w", err)
			}
			if stock.IsNegative() || flowRate.IsNegative() {
				return fmt.Errorf("%w: stock06 and flow must be non-negative", entities.ErrInvalidValue)
			}

			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := sqlite.NewCalibrationRepository(conn)
			return repo.PutBioSetting(cmd.Context(), &entities.BioSetting{
				Plant:   entities.Plant(plant),
				Product: entities.Product(product),
				Stock06: stock,
				Flow:    flowRate,
			})
		},
	}

	cmd.Flags().StringVar(&plant, "plant", "", "plant identifier")
	cmd.Flags().StringVar(&product, "product", "", "product identifier")
	cmd.Flags().StringVar(&stock06, "stock06", "", "default 06:00 stock level")
	cmd.Flags().StringVar(&flow, "flow", "", "default daily usage")
	cmd.MarkFlagRequired("plant")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("stock06")
	cmd.MarkFlagRequired("flow")
	return cmd
}
