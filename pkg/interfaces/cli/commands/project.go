package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tkoide/drp/pkg/application/services"
	"github.com/tkoide/drp/pkg/domain/entities"
	csvrepo "github.com/tkoide/drp/pkg/infrastructure/repositories/csv"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/sqlite"
	"github.com/tkoide/drp/pkg/interfaces/cli/output"
)

func newProjectCmd() *cobra.Command {
	var (
		plant      string
		product    string
		startDate  string
		days       int
		schedule   string
		startStock string
		usage      string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the four-checkpoint stock trace for a draft schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.ParseInLocation(entities.DateLayout, startDate, time.UTC)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			horizon, err := entities.NewHorizonDays(start, days)
			if err != nil {
				return err
			}

			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			calibrator := services.NewCalibrator(
				sqlite.NewCalibrationRepository(conn),
				entities.BuiltinDefaults(),
			)
			result, err := calibrator.Resolve(cmd.Context(), entities.Plant(plant), entities.Product(product))
			if err != nil {
				return err
			}
			session, err := services.NewDraftSession(
				entities.Plant(plant), entities.Product(product),
				horizon, result.Setting, result.DeliveryAmount)
			if err != nil {
				return err
			}
			if schedule != "" {
				set, err := csvrepo.NewLoader().LoadSchedule(schedule, result.DeliveryAmount)
				if err != nil {
					return err
				}
				if err := session.LoadEvents(set); err != nil {
					return err
				}
			}

			if startStock != "" {
				v, err := decimal.NewFromString(startStock)
				if err != nil {
					return fmt.Errorf("parsing --start-stock: %w", err)
				}
				if err := session.SetStartingStock(v); err != nil {
					return err
				}
			}
			if usage != "" {
				v, err := decimal.NewFromString(usage)
				if err != nil {
					return fmt.Errorf("parsing --usage: %w", err)
				}
				if err := session.SetUsageAll(v); err != nil {
					return err
				}
			}

			return output.RenderTrace(cmd.OutOrStdout(), session.Trace(), session.Events(), format)
		},
	}

	cmd.Flags().StringVar(&plant, "plant", "", "plant identifier")
	cmd.Flags().StringVar(&product, "product", "", "product identifier")
	cmd.Flags().StringVar(&startDate, "start", "", "first horizon date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 10, "horizon length in days")
	cmd.Flags().StringVar(&schedule, "schedule", "", "draft schedule CSV (date,time,quantity_per_truck,cancelled)")
	cmd.Flags().StringVar(&startStock, "start-stock", "", "override the calibrated starting stock")
	cmd.Flags().StringVar(&usage, "usage", "", "override the calibrated flat daily usage")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	cmd.MarkFlagRequired("plant")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("start")
	return cmd
}
