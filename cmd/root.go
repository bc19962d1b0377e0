package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"umaspark/internal/utils"
	"umaspark/pkg/rating"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "umaspark",
	Short: "Rank breeding candidates from an Umamusume export dump.",
	Long: `umaspark resolves the numeric factor, skill, character and race codes of a
breeding export dump into readable form, aggregates inherited spark strength
across the three-uma lineage, and ranks every candidate with a tunable
heuristic score.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.umaspark.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".umaspark")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.umaspark.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	viper.SetDefault("paths.game_data", "game_data")
	viper.SetDefault("paths.input", "umadump_data.json")
	viper.SetDefault("paths.output", "cleaned_umas_umadump.json")
	viper.SetDefault("paths.masterdb", defaultMasterDB())

	// Scoring weights are plain config so selection strategy can be tuned
	// without a rebuild.
	w := rating.DefaultWeights()
	viper.SetDefault("weights.total_sparks", w.TotalSparks)
	viper.SetDefault("weights.win", w.Win)
	viper.SetDefault("weights.non_main_white_penalty", w.NonMainWhitePenalty)
	viper.SetDefault("weights.green_count_bonus", w.GreenCountBonus)
	viper.SetDefault("weights.main_threshold", w.MainThreshold)
	viper.SetDefault("weights.low_main_penalty_per_star", w.LowMainPenaltyPerStar)
	viper.SetDefault("weights.missing_green_penalty", w.MissingGreenPenalty)
	viper.SetDefault("weights.distance_conflict_penalty", w.DistanceConflictPenalty)
	viper.SetDefault("weights.aptitude_conflict_penalty", w.AptitudeConflictPenalty)
	viper.SetDefault("weights.parent_low_threshold", w.ParentLowThreshold)
	viper.SetDefault("weights.parent_high_threshold", w.ParentHighThreshold)
	viper.SetDefault("weights.parent_rank_low_penalty", w.ParentRankLowPenalty)
	viper.SetDefault("weights.parent_rank_high_bonus", w.ParentRankHighBonus)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// defaultMasterDB is the game client's database path on a default install.
func defaultMasterDB() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "AppData", "LocalLow", "Cygames", "Umamusume", "master", "master.mdb")
}

func weightsFromConfig() rating.Weights {
	return rating.Weights{
		TotalSparks:             viper.GetFloat64("weights.total_sparks"),
		Win:                     viper.GetFloat64("weights.win"),
		NonMainWhitePenalty:     viper.GetFloat64("weights.non_main_white_penalty"),
		GreenCountBonus:         viper.GetFloat64("weights.green_count_bonus"),
		MainThreshold:           viper.GetInt("weights.main_threshold"),
		LowMainPenaltyPerStar:   viper.GetFloat64("weights.low_main_penalty_per_star"),
		MissingGreenPenalty:     viper.GetFloat64("weights.missing_green_penalty"),
		DistanceConflictPenalty: viper.GetFloat64("weights.distance_conflict_penalty"),
		AptitudeConflictPenalty: viper.GetFloat64("weights.aptitude_conflict_penalty"),
		ParentLowThreshold:      viper.GetInt64("weights.parent_low_threshold"),
		ParentHighThreshold:     viper.GetInt64("weights.parent_high_threshold"),
		ParentRankLowPenalty:    viper.GetFloat64("weights.parent_rank_low_penalty"),
		ParentRankHighBonus:     viper.GetFloat64("weights.parent_rank_high_bonus"),
	}
}
