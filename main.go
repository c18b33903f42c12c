package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Scan
	rootDir          string
	includeHidden    bool
	excludePaths     []string
	policyName       string
	respectGitignore bool
	interactiveMode  bool

	// Output
	outXLSX         string
	outDOCX         string
	outPDF          string
	title           string
	copyToClipboard bool

	// Launcher
	generatorBin string

	verbose bool
	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "file_listing",
	Short: "Generate file catalogs in Excel and Word formats.",
	Long: `file_listing walks a root folder and writes a spreadsheet and a Word
document listing the files found. The output and tmp folders under the root
are never scanned.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		opts.OutXLSX = viper.GetString("out_xlsx")
		opts.OutDOCX = viper.GetString("out_docx")
		opts.OutPDF = viper.GetString("out_pdf")
		opts.Title = viper.GetString("title")

		res, err := runCatalog(opts)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop launcher for the targets folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		// the window has no terminal to run a picker in
		opts.Interactive = false
		l := &launcher{
			targets: opts.Root,
			gen:     newGenerator(viper.GetString("generator_bin"), opts),
		}
		return runGUI(l)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete everything inside the targets folder except output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveRoot(viper.GetString("root"))
		if err != nil {
			return err
		}
		created, err := ensureTargets(dir)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "targets folder was missing and has been created.")
			return nil
		}
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("This will permanently delete ALL files and folders inside %s. Continue?", dir)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled.")
			return nil
		}
		if _, err := clearTargets(dir); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "targets folder has been cleared.")
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/file_listing/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Scan
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", defaultRoot(), "Root folder to scan (default: targets folder next to the executable)")
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	rootCmd.PersistentFlags().BoolVar(&includeHidden, "include-hidden", false, "Include hidden files/folders (starting with a dot)")
	viper.BindPFlag("include_hidden", rootCmd.PersistentFlags().Lookup("include-hidden"))
	rootCmd.PersistentFlags().StringArrayVar(&excludePaths, "exclude", nil, "Relative paths to exclude (can be repeated)")
	viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	rootCmd.PersistentFlags().StringVar(&policyName, "policy", string(PolicyStem), "Row shape: stem or full-path")
	viper.BindPFlag("policy", rootCmd.PersistentFlags().Lookup("policy"))
	rootCmd.PersistentFlags().BoolVar(&respectGitignore, "respect-gitignore", false, "Skip paths matched by the root .gitignore")
	viper.BindPFlag("respect_gitignore", rootCmd.PersistentFlags().Lookup("respect-gitignore"))

	// Output
	rootCmd.Flags().StringVar(&outXLSX, "out-xlsx", "", "Output Excel path (default <root>/output/spreadsheet/file_catalog.xlsx)")
	viper.BindPFlag("out_xlsx", rootCmd.Flags().Lookup("out-xlsx"))
	rootCmd.Flags().StringVar(&outDOCX, "out-docx", "", "Output Word path (default <root>/output/doc/file_catalog.docx)")
	viper.BindPFlag("out_docx", rootCmd.Flags().Lookup("out-docx"))
	rootCmd.Flags().StringVar(&outPDF, "out-pdf", "", "Also save the catalog as PDF")
	viper.BindPFlag("out_pdf", rootCmd.Flags().Lookup("out-pdf"))
	rootCmd.Flags().StringVar(&title, "title", "", "Optional directory name shown in Word header")
	viper.BindPFlag("title", rootCmd.Flags().Lookup("title"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the listing to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick extra paths to exclude in a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Launcher
	guiCmd.Flags().StringVar(&generatorBin, "generator-bin", "", "Run this generator executable instead of generating in process")
	viper.BindPFlag("generator_bin", guiCmd.Flags().Lookup("generator-bin"))

	viper.SetDefault("policy", string(PolicyStem))
	viper.SetDefault("include_hidden", false)
	viper.SetDefault("respect_gitignore", false)
	viper.SetDefault("pdf_font", "")

	rootCmd.AddCommand(guiCmd, clearCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "file_listing"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("FILE_LISTING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match FILE_LISTING_*

	err := viper.ReadInConfig()

	logger = newLogger(os.Stderr, viper.GetBool("verbose"))
	if err == nil {
		logger.Debug().Str("path", viper.ConfigFileUsed()).Msg("using config file")
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		logger.Warn().Err(err).Msg("error reading config file")
	}

	pdfFontFile = viper.GetString("pdf_font")
}

// optionsFromConfig collects the scan options shared by every command.
func optionsFromConfig() (Options, error) {
	policy, err := parsePolicy(viper.GetString("policy"))
	if err != nil {
		return Options{}, err
	}
	return Options{
		Root:             viper.GetString("root"),
		IncludeHidden:    viper.GetBool("include_hidden"),
		Excludes:         viper.GetStringSlice("exclude"),
		Policy:           policy,
		RespectGitignore: viper.GetBool("respect_gitignore"),
		Interactive:      viper.GetBool("interactive"),
		Clipboard:        viper.GetBool("clipboard"),
	}, nil
}

// defaultRoot is the targets folder next to the running executable.
func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "targets"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "targets")
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
