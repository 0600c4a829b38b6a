package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

var (
	// Flags for mass / mz / ppm / adducts commands
	convMZ          float64
	convMass        float64
	convAdduct      string
	ppmExperimental float64
	ppmTheoretical  float64
	ppmMass         float64
	ppmValue        int
	listPolarity    string
)

var massCmd = &cobra.Command{
	Use:   "mass",
	Short: "Neutral monoisotopic mass of an ion observed as an adduct",
	Long: `Compute the neutral monoisotopic mass from an observed m/z under an adduct
hypothesis.

Example:
  adductid mass --mz 501.007276 --adduct "[M+H]+"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cfg.Vocabulary)
		if err != nil {
			return err
		}
		mass, err := table.MassFromMz(convMZ, convAdduct)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", mass)
		return nil
	},
}

var mzCmd = &cobra.Command{
	Use:   "mz",
	Short: "Expected m/z of a neutral mass ionized as an adduct",
	Long: `Compute the m/z at which a neutral monoisotopic mass appears as an adduct.

Example:
  adductid mz --mass 500 --adduct "[M+2H]2+"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cfg.Vocabulary)
		if err != nil {
			return err
		}
		mz, err := table.MzFromMass(convMass, convAdduct)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", mz)
		return nil
	},
}

var ppmCmd = &cobra.Command{
	Use:   "ppm",
	Short: "ppm error between two masses, or the Da window for a ppm tolerance",
	Long: `Either compare an experimental and a theoretical mass (rounded ppm), or turn
a ppm tolerance around a mass into Daltons.

Examples:
  adductid ppm --experimental 500.0025 --theoretical 500.0
  adductid ppm --mass 500 --ppm 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		flags := cmd.Flags()

		switch {
		case flags.Changed("experimental") && flags.Changed("theoretical"):
			if ppmTheoretical == 0 {
				return fmt.Errorf("theoretical mass must be non-zero")
			}
			fmt.Fprintf(out, "%d\n", core.PPMError(ppmExperimental, ppmTheoretical))
		case flags.Changed("mass") && flags.Changed("ppm"):
			fmt.Fprintf(out, "window: %.6f Da\n", core.PPMWindow(ppmMass, ppmValue))
			fmt.Fprintf(out, "rounded: %.0f Da\n", core.DaFromPPM(ppmMass, ppmValue))
		default:
			return fmt.Errorf("specify --experimental and --theoretical, or --mass and --ppm")
		}
		return nil
	},
}

var adductsCmd = &cobra.Command{
	Use:   "adducts",
	Short: "List the adducts in detection order",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable(cfg.Vocabulary)
		if err != nil {
			return err
		}

		polarities := []core.Polarity{core.Positive, core.Negative}
		if listPolarity != "" {
			p, err := core.ParsePolarity(listPolarity)
			if err != nil {
				return err
			}
			polarities = []core.Polarity{p}
		}

		out := cmd.OutOrStdout()
		for _, p := range polarities {
			vocab := table.Vocabulary(p)
			fmt.Fprintf(out, "%s (%d adducts)\n", strings.ToUpper(p.String()), vocab.Len())
			specs, err := vocab.Specs()
			if err != nil {
				return err
			}
			for _, s := range specs {
				fmt.Fprintf(out, "  %-18s shift=%+.6f multimer=%d charge=%d%s\n",
					s.Label, s.Shift, s.Multimer, s.Charge, p.Symbol())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(massCmd)
	rootCmd.AddCommand(mzCmd)
	rootCmd.AddCommand(ppmCmd)
	rootCmd.AddCommand(adductsCmd)

	massCmd.Flags().Float64Var(&convMZ, "mz", 0, "Observed m/z (required)")
	massCmd.Flags().StringVarP(&convAdduct, "adduct", "a", "", "Adduct label, e.g. [M+H]+ (required)")
	massCmd.MarkFlagRequired("mz")
	massCmd.MarkFlagRequired("adduct")

	mzCmd.Flags().Float64Var(&convMass, "mass", 0, "Neutral monoisotopic mass (required)")
	mzCmd.Flags().StringVarP(&convAdduct, "adduct", "a", "", "Adduct label, e.g. [M+H]+ (required)")
	mzCmd.MarkFlagRequired("mass")
	mzCmd.MarkFlagRequired("adduct")

	ppmCmd.Flags().Float64Var(&ppmExperimental, "experimental", 0, "Experimental mass")
	ppmCmd.Flags().Float64Var(&ppmTheoretical, "theoretical", 0, "Theoretical mass")
	ppmCmd.Flags().Float64Var(&ppmMass, "mass", 0, "Mass the ppm tolerance applies to")
	ppmCmd.Flags().IntVar(&ppmValue, "ppm", 0, "ppm tolerance")

	adductsCmd.Flags().StringVar(&listPolarity, "polarity", "", "Only list one polarity: positive or negative")
}
