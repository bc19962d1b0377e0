package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"umaspark/internal/utils"
	"umaspark/pkg/gamedata"
	"umaspark/pkg/pipeline"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Resolve and rank every entry of the export dump",
	Long: `Reads the raw export dump, resolves every numeric code against the
game_data reference tables (re-extracting them from master.mdb when the game
is installed), scores each candidate and writes the sorted ranking as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := viper.GetString("paths.game_data")
		dbPath := viper.GetString("paths.masterdb")

		if err := gamedata.Ensure(dataDir, dbPath); err != nil {
			return err
		}
		tables, err := gamedata.Load(dataDir)
		if err != nil {
			return err
		}

		inputPath := viper.GetString("paths.input")
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("required JSON file not found: %s", inputPath)
			}
			return err
		}

		records, err := pipeline.Run(raw, tables, weightsFromConfig())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		outputPath := viper.GetString("paths.output")
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return err
		}

		utils.Log.Infof("Created %s with %d entries", outputPath, len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("input", "i", "", "Path to the raw export dump JSON")
	rankCmd.Flags().StringP("output", "o", "", "Path for the ranked output JSON")
	rankCmd.Flags().String("gamedata", "", "Directory holding the reference JSONs")
	_ = viper.BindPFlag("paths.input", rankCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("paths.output", rankCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("paths.game_data", rankCmd.Flags().Lookup("gamedata"))
}
