package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tkoide/drp/pkg/domain/entities"
)

var warn = color.New(color.FgYellow, color.Bold)

// RenderTrace writes the projected stock trace in the given format.
func RenderTrace(w io.Writer, trace entities.StockTrace, events *entities.DeliveryEventSet, format string) error {
	switch format {
	case "text":
		renderTraceText(w, trace, events)
		return nil
	case "json":
		return renderTraceJSON(w, trace, events)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTraceText(w io.Writer, trace entities.StockTrace, events *entities.DeliveryEventSet) {
	fmt.Fprintf(w, "%-12s %-8s %-10s %-10s %-10s %-8s %s\n",
		"Date", "06:00", "Pre-del", "Post-del", "20:00", "Trucks", "Delivered")
	fmt.Fprintf(w, "%-12s %-8s %-10s %-10s %-10s %-8s %s\n",
		"------------", "--------", "----------", "----------", "----------", "--------", "---------")

	for _, day := range trace {
		line := fmt.Sprintf("%-12s %-8s %-10s %-10s %-10s %-8d %s",
			day.Date.Format(entities.DateLayout),
			day.Stock06.StringFixed(1),
			day.StockPreDelivery.StringFixed(1),
			day.StockPostDelivery.StringFixed(1),
			day.Stock20.StringFixed(1),
			events.DeliveryCount(day.Date),
			events.DeliveryQuantity(day.Date).StringFixed(1))
		if day.Stock20.IsNegative() {
			warn.Fprintf(w, "%s  STOCK-OUT\n", line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}

type traceDayJSON struct {
	Date              string `json:"date"`
	Stock06           string `json:"stock06"`
	StockPreDelivery  string `json:"stock_pre_delivery"`
	StockPostDelivery string `json:"stock_post_delivery"`
	Stock20           string `json:"stock20"`
	DeliveryCount     int    `json:"delivery_count"`
	DeliveryQuantity  string `json:"delivery_quantity"`
}

func renderTraceJSON(w io.Writer, trace entities.StockTrace, events *entities.DeliveryEventSet) error {
	days := make([]traceDayJSON, 0, len(trace))
	for _, day := range trace {
		days = append(days, traceDayJSON{
			Date:              day.Date.Format(entities.DateLayout),
			Stock06:           day.Stock06.StringFixed(1),
			StockPreDelivery:  day.StockPreDelivery.StringFixed(1),
			StockPostDelivery: day.StockPostDelivery.StringFixed(1),
			Stock20:           day.Stock20.StringFixed(1),
			DeliveryCount:     events.DeliveryCount(day.Date),
			DeliveryQuantity:  events.DeliveryQuantity(day.Date).StringFixed(1),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(days)
}

// RenderConflicts writes the conflict annotations between a draft and its
// comparison baseline. Conflicts are advisory warnings, never errors.
func RenderConflicts(w io.Writer, conflicts []entities.ConflictAnnotation, format string) error {
	switch format {
	case "text":
		renderConflictsText(w, conflicts)
		return nil
	case "json":
		return renderConflictsJSON(w, conflicts)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderConflictsText(w io.Writer, conflicts []entities.ConflictAnnotation) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, "No delivery conflicts.")
		return
	}
	warn.Fprintf(w, "%d delivery conflict(s):\n", len(conflicts))
	for _, c := range conflicts {
		warn.Fprintf(w, "  %s: draft %s (%s/truck) within %dmin before baseline %s (%s/truck)\n",
			c.EventA.Date.Format(entities.DateLayout),
			c.EventA.Time,
			c.EventA.QuantityPerTruck.StringFixed(1),
			entities.ConflictWindowMinutes,
			c.EventB.Time,
			c.EventB.QuantityPerTruck.StringFixed(1))
	}
}

type conflictJSON struct {
	Date         string `json:"date"`
	DraftTime    string `json:"draft_time"`
	BaselineTime string `json:"baseline_time"`
	Overlapping  bool   `json:"overlapping"`
}

func renderConflictsJSON(w io.Writer, conflicts []entities.ConflictAnnotation) error {
	out := make([]conflictJSON, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, conflictJSON{
			Date:         c.EventA.Date.Format(entities.DateLayout),
			DraftTime:    c.EventA.Time.String(),
			BaselineTime: c.EventB.Time.String(),
			Overlapping:  c.Overlapping,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
