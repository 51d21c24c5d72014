package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/seymourav/go-seymour/client"
	"github.com/seymourav/go-seymour/discovery"
	"github.com/seymourav/go-seymour/protocol"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func renderStatus(status protocol.MaskStatus, stats client.ConnectionStats) {
	fmt.Printf("status: %s\n", status.Code)

	if status.Ratio != nil {
		fmt.Printf("ratio: %s\n", status.Ratio)
	}

	if stats.SinceLastSuccess >= 0 {
		fmt.Printf("last contact: %s\n", stats.LastSuccess.Format("15:04:05"))
	}
}

func renderPositions(positions []protocol.MaskPosition) {
	if len(positions) == 0 {
		fmt.Println("no motors reported")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "MOTOR\tPOSITION")

	for _, p := range positions {
		fmt.Fprintf(w, "%s\t%.1f%%\n", p.MotorID, p.PositionPct)
	}

	_ = w.Flush()
}

func renderSettings(settings []protocol.RatioSetting) {
	if len(settings) == 0 {
		fmt.Println("no presets stored")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "RATIO\tLABEL\tWIDTH\tHEIGHT\tPOSITIONS")

	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\t%.1f\"\t%.1f\"\t%s\n",
			s.Ratio, s.Label, s.WidthInches, s.HeightInches, formatPcts(s.MotorPositionsPct))
	}

	_ = w.Flush()
}

func formatPcts(pcts []float64) string {
	parts := make([]string, 0, len(pcts))
	for _, p := range pcts {
		parts = append(parts, fmt.Sprintf("%.1f%%", p))
	}

	return strings.Join(parts, " ")
}

func renderSystemInfo(info protocol.SystemInfo) {
	masks := make([]string, 0, len(info.MaskIDs))
	for _, m := range info.MaskIDs {
		masks = append(masks, m.String())
	}

	w := newTable()
	fmt.Fprintf(w, "model:\t%s\n", info.ScreenModel)
	fmt.Fprintf(w, "size:\t%.2f\" x %.2f\"\n", info.WidthInches, info.HeightInches)
	fmt.Fprintf(w, "serial:\t%s\n", info.SerialNumber)
	fmt.Fprintf(w, "masks:\t%s\n", strings.Join(masks, ", "))
	_ = w.Flush()
}

func renderEndpoints(endpoints []discovery.Endpoint) {
	if len(endpoints) == 0 {
		fmt.Println("no IP2SL bridges discovered")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "HOST\tPORT\tMODEL\tUUID")

	for _, ep := range endpoints {
		model := ep.Metadata["Model"]
		if model == "" {
			model = ep.Metadata["Make"]
		}

		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", ep.Host, ep.Port, model, ep.Metadata["UUID"])
	}

	_ = w.Flush()
}

func renderSerialPorts(ports []discovery.SerialPort) {
	if len(ports) == 0 {
		fmt.Println("no serial ports detected")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "DEVICE\tBAUD\tDESCRIPTION\tHARDWARE ID")

	for _, p := range ports {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", p.Device, p.Baud, orDash(p.Description), orDash(p.HardwareID))
	}

	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
