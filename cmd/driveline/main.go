// Package main provides the driveline binary entry point.
// Driveline is a command line calculator for drivetrain unit conversions:
// horsepower/torque, speed from output shaft speed, tire geometry and
// point slopes.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/driveline/driveline/pkg/formula"
	"github.com/driveline/driveline/pkg/tire"
)

const (
	Version = "0.1.0"
	appName = "driveline"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driveline",
		Short: "Drivetrain unit conversion calculator",
		Long: `Driveline converts between common drivetrain units:

- horsepower, torque and engine speed (hp = torque x rpm / 5250)
- horsepower and kilowatts
- road speed from transmission output shaft speed (OSS)
- tire geometry from a metric tire size such as 275/55R20
- slope between two points`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		hpCmd(),
		torqueCmd(),
		kwCmd(),
		speedCmd(),
		tireCmd(),
		slopeCmd(),
		versionCmd(),
	)
	return cmd
}

func hpCmd() *cobra.Command {
	var (
		torque float64
		rpm    float64
		kw     float64
	)
	cmd := &cobra.Command{
		Use:   "hp",
		Short: "Compute horsepower from torque and rpm, or from kilowatts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("kw") {
				hp, err := formula.HorsepowerFromKilowatts(kw)
				if err != nil {
					return err
				}
				fmt.Printf("%.2f hp\n", hp)
				return nil
			}
			if !cmd.Flags().Changed("torque") || !cmd.Flags().Changed("rpm") {
				return fmt.Errorf("either --kw, or both --torque and --rpm are required")
			}
			hp, err := formula.HorsepowerFromTorque(torque, rpm)
			if err != nil {
				return err
			}
			fmt.Printf("%.2f hp\n", hp)
			return nil
		},
	}
	cmd.Flags().Float64Var(&torque, "torque", 0, "engine torque in ft-lbs")
	cmd.Flags().Float64Var(&rpm, "rpm", 0, "engine speed in rpm")
	cmd.Flags().Float64Var(&kw, "kw", 0, "power in kilowatts")
	return cmd
}

func torqueCmd() *cobra.Command {
	var (
		hp  float64
		rpm float64
	)
	cmd := &cobra.Command{
		Use:   "torque",
		Short: "Compute torque (ft-lbs) from horsepower and rpm",
		RunE: func(cmd *cobra.Command, args []string) error {
			tq, err := formula.TorqueFromHorsepower(hp, rpm)
			if err != nil {
				return err
			}
			fmt.Printf("%.2f ft-lbs\n", tq)
			return nil
		},
	}
	cmd.Flags().Float64Var(&hp, "hp", 0, "power in horsepower")
	cmd.Flags().Float64Var(&rpm, "rpm", 0, "engine speed in rpm")
	cmd.MarkFlagRequired("hp")  //nolint:errcheck
	cmd.MarkFlagRequired("rpm") //nolint:errcheck
	return cmd
}

func kwCmd() *cobra.Command {
	var (
		hp         float64
		efficiency float64
	)
	cmd := &cobra.Command{
		Use:   "kw",
		Short: "Compute kilowatts from horsepower",
		RunE: func(cmd *cobra.Command, args []string) error {
			kw, err := formula.KilowattsFromHorsepower(hp, efficiency)
			if err != nil {
				return err
			}
			fmt.Printf("%.2f kW\n", kw)
			return nil
		},
	}
	cmd.Flags().Float64Var(&hp, "hp", 0, "power in horsepower")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 1.0, "drivetrain efficiency in (0, 1]")
	cmd.MarkFlagRequired("hp") //nolint:errcheck
	return cmd
}

func speedCmd() *cobra.Command {
	var (
		oss       float64
		tireSize  string
		axleRatio float64
		mph       float64
		kph       float64
	)
	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Convert between mph, kph and output shaft speed",
		Long: `Convert speeds. Three modes:

  --mph N                              mph to kph
  --kph N                              kph to mph
  --oss N --tire SIZE --axle-ratio R   road speed from output shaft rpm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cmd.Flags().Changed("oss"):
				if tireSize == "" || axleRatio == 0 {
					return fmt.Errorf("--oss requires --tire and --axle-ratio")
				}
				t, err := tire.Parse(tireSize)
				if err != nil {
					return err
				}
				mph, err := formula.MPHFromOSS(oss, t.RevsPerMile(), axleRatio)
				if err != nil {
					return err
				}
				fmt.Printf("%.2f mph (%.2f kph)\n", mph, formula.MPHToKPH(mph))
				return nil
			case cmd.Flags().Changed("mph"):
				fmt.Printf("%.2f kph\n", formula.MPHToKPH(mph))
				return nil
			case cmd.Flags().Changed("kph"):
				fmt.Printf("%.2f mph\n", formula.KPHToMPH(kph))
				return nil
			default:
				return fmt.Errorf("one of --mph, --kph or --oss is required")
			}
		},
	}
	cmd.Flags().Float64Var(&oss, "oss", 0, "transmission output shaft speed in rpm")
	cmd.Flags().StringVar(&tireSize, "tire", "", "metric tire size, e.g. 275/55R20")
	cmd.Flags().Float64Var(&axleRatio, "axle-ratio", 0, "final drive ratio")
	cmd.Flags().Float64Var(&mph, "mph", 0, "speed in miles per hour")
	cmd.Flags().Float64Var(&kph, "kph", 0, "speed in kilometers per hour")
	return cmd
}

func tireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tire SIZE",
		Short: "Print tire geometry for a metric tire size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tire.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("size:           %s\n", t.Size)
			fmt.Printf("diameter:       %.2f in\n", t.Diameter)
			fmt.Printf("circumference:  %.2f in\n", t.Circumference())
			fmt.Printf("revs per mile:  %.1f\n", t.RevsPerMile())
			return nil
		},
	}
}

func slopeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slope X1 Y1 X2 Y2",
		Short: "Compute the slope of the line through two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, 4)
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				vals[i] = v
			}
			m, err := formula.Slope(vals[0], vals[1], vals[2], vals[3])
			if err != nil {
				return err
			}
			fmt.Printf("%g\n", m)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	}
}
