// check-federal-state: determines which German federal state(s) an area of
// interest intersects, against a reference layer of state boundary polygons.
package main

import (
	"fmt"
	"os"

	"fs-api/internal/check"
	"fs-api/internal/geometry"
	"fs-api/internal/logger"
	"fs-api/internal/mapset"
	"fs-api/internal/refdata"
	"fs-api/internal/report"
	"fs-api/internal/version"
	"fs-api/pkg/geojson"

	"github.com/spf13/cobra"
)

// defaultRefLayer resolves the reference layer reference: FS_BOUNDARIES wins,
// otherwise the bundled layer name inside the mapset.
func defaultRefLayer() string {
	if v := os.Getenv("FS_BOUNDARIES"); v != "" {
		return v
	}
	return "federal_states"
}

func NewRootCmd() *cobra.Command {
	var (
		aoiRef    string
		refRef    string
		outLayer  string
		filePath  string
		shellMode bool
	)
	cmd := &cobra.Command{
		Use:           "check-federal-state",
		Short:         "Check which German federal state(s) a polygon intersects",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := mapset.Open(mapset.DefaultDir())
			if err != nil {
				return err
			}
			aoiFC, err := ms.ReadLayer(aoiRef)
			if err != nil {
				return err
			}
			var aoi []geometry.Polygon
			for _, f := range aoiFC.Features {
				aoi = append(aoi, geometry.FromGeoJSON(f.Geometry)...)
			}
			if len(aoi) == 0 {
				return fmt.Errorf("aoi layer %q has no polygon geometry", aoiRef)
			}
			if refRef == "" {
				refRef = defaultRefLayer()
			}
			refFC, err := ms.ReadLayer(refRef)
			if err != nil {
				return err
			}
			ref, err := refdata.FromLayer(refFC)
			if err != nil {
				return err
			}
			if m, err := refdata.LoadManifest(); err == nil {
				if unknown := m.UnknownCodes(ref); len(unknown) > 0 {
					logger.L().Warn("ref_unknown_codes", "codes", unknown)
				}
			}
			res := check.Classify(aoi, ref)
			report.Render(cmd.OutOrStdout(), res, shellMode)
			if outLayer != "" && res.InGermany() {
				var codes []string
				for _, m := range res.Matches {
					codes = append(codes, m.Code)
				}
				if err := ms.WriteLayer(outLayer, ref.Subset(codes)); err != nil {
					return err
				}
			}
			report.WriteFile(filePath, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&aoiRef, "aoi", "", "area-of-interest layer name or .geojson path (required)")
	cmd.Flags().StringVar(&refRef, "federal_states", "", "reference layer with FS/FEDERAL_STATE fields")
	cmd.Flags().StringVar(&outLayer, "output", "", "name for a new layer holding the matched states")
	cmd.Flags().StringVar(&filePath, "federal_state_file", "", "path for a KEY=VALUE report file")
	cmd.Flags().BoolVarP(&shellMode, "shell", "g", false, "machine-readable KEY=VALUE output")
	_ = cmd.MarkFlagRequired("aoi")
	cmd.AddCommand(newImportCmd(), newRemoveCmd())
	return cmd
}

func newImportCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a GeoJSON file as a named layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := mapset.Open(mapset.DefaultDir())
			if err != nil {
				return err
			}
			b, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			fc, err := geojson.Decode(b)
			if err != nil {
				return err
			}
			if err := ms.WriteLayer(output, fc); err != nil {
				return err
			}
			logger.L().Info("layer_import_ok", "input", input, "layer", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "GeoJSON file to import (required)")
	cmd.Flags().StringVar(&output, "output", "", "layer name to create (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <layer>...",
		Short: "Remove named layers from the mapset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := mapset.Open(mapset.DefaultDir())
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := ms.Remove(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
