package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"
)

// List the cpus available for rendering.
func ListDevices(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return err
	}

	physical, err := cpu.Counts(false)
	if err != nil {
		return err
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Vendor", "Model", "Cores", "Speed (MHz)"})
	for idx, info := range cpuInfo {
		table.Append([]string{
			fmt.Sprintf("%02d", idx),
			info.VendorID,
			info.ModelName,
			fmt.Sprintf("%d", info.Cores),
			fmt.Sprintf("%4.0f", info.Mhz),
		})
	}
	table.SetFooter([]string{"", "", "", "PHYSICAL/LOGICAL", fmt.Sprintf("%d/%d", physical, logical)})
	table.Render()

	logger.Noticef("system provides %d logical cpu(s); the default tracer uses %d render goroutines\n%s", logical, runtime.NumCPU(), buf.String())
	return nil
}
