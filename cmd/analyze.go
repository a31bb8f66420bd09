package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/analysis"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/reference"
	"github.com/spigell/resume-analyzer/internal/scoring"
	"github.com/spigell/resume-analyzer/internal/secrets"
	"github.com/spigell/resume-analyzer/internal/textract"
)

const (
	stdinSource        = "-"
	proficiencyHash    = "hash"
	proficiencyRandom  = "random"
	providerGemini     = "gemini"
	reasonNoAIFlag     = "disabled by --no-ai"
	reasonAIDisabled   = "ai.enabled is false"
	maxJobDescription  = 1 << 20
	jobDescriptionName = "job description"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze resumes (PDF, DOCX, text or - for stdin) against a target role",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("role", "r", "", "target role (default is the reference default role)")
	analyzeCmd.Flags().StringP("job-description", "J", "", "file with a job description passed to the AI review")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().IntP("workers", "w", 0, "number of resumes analyzed at once")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "pick the target role from a list when --role is not set")
	analyzeCmd.Flags().Bool("no-ai", false, "skip the AI review even if it is enabled in the config")
	analyzeCmd.Flags().Uint64("seed", 0, "seed for the proficiency estimates")

	viper.BindPFlag("role", analyzeCmd.Flags().Lookup("role"))
	viper.BindPFlag("workers", analyzeCmd.Flags().Lookup("workers"))
	viper.BindPFlag("proficiency.seed", analyzeCmd.Flags().Lookup("seed"))
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the resume-analyzer", zap.String("version", version), zap.Int("files", len(args)))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	data, err := reference.Load(config.ReferenceFile)
	if err != nil {
		logger.Fatal("loading reference data", zap.Error(err))
	}

	role := strings.TrimSpace(config.Role)
	if role == "" && cmd.Flag("interactive").Value.String() == "true" {
		role, err = pickRole(data)
		if err != nil {
			logger.Fatal("picking a role", zap.Error(err))
		}
	}

	jobDescription, err := readJobDescription(cmd.Flag("job-description").Value.String())
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	estimator, err := newEstimator(config.Proficiency)
	if err != nil {
		logger.Fatal("creating a proficiency estimator", zap.Error(err))
	}

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithWorkers(config.Workers),
		analysis.WithEstimator(estimator),
	}
	opts = append(opts, enrichmentOptions(ctx, cmd, config.AI, logger)...)

	analyzer, err := analysis.New(data, opts...)
	if err != nil {
		logger.Fatal("creating the analyzer", zap.Error(err))
	}

	for _, stage := range analyzer.Stages() {
		logger.Debug("pipeline stage", zap.String("name", stage.Name), zap.Bool("enabled", stage.Enabled), zap.String("reason", stage.Reason))
	}

	requests := make([]*analysis.Request, 0, len(args))
	for _, source := range args {
		text, err := readResume(source)
		if err != nil {
			logger.Fatal("reading a resume", zap.String("source", source), zap.Error(err))
		}
		requests = append(requests, &analysis.Request{
			Source:         source,
			Text:           text,
			TargetRole:     role,
			JobDescription: jobDescription,
		})
	}

	reports, err := analyzer.AnalyzeAll(ctx, requests)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	output := cmd.Flag("output").Value.String()
	if err := writeReports(cmd.OutOrStdout(), output, reports); err != nil {
		logger.Fatal("writing reports", zap.Error(err))
	}

	if output != "" {
		logger.Info("reports written", zap.String("filename", output), zap.Int("count", len(reports)))
	}
}

func pickRole(data *reference.Data) (string, error) {
	registry, err := reference.NewRegistry(data)
	if err != nil {
		return "", err
	}

	rolePrompt := promptui.Select{
		Label: "Choose a target role and press ENTER",
		Items: registry.Roles(),
	}

	_, role, err := rolePrompt.Run()
	if err != nil {
		return "", err
	}
	return role, nil
}

func readResume(source string) (string, error) {
	if source != stdinSource {
		return textract.FromFile(source)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return textract.Extract(data, textract.MIMEText)
}

func readJobDescription(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxJobDescription {
		return "", fmt.Errorf("%s %q is larger than %d bytes", jobDescriptionName, path, maxJobDescription)
	}

	return textract.FromFile(path)
}

func newEstimator(cfg *ProficiencyConfig) (scoring.ProficiencyEstimator, error) {
	mode := proficiencyHash
	var seed uint64
	if cfg != nil {
		seed = cfg.Seed
		if m := strings.TrimSpace(strings.ToLower(cfg.Mode)); m != "" {
			mode = m
		}
	}

	switch mode {
	case proficiencyHash:
		return scoring.NewHashEstimator(seed), nil
	case proficiencyRandom:
		return scoring.NewRandomEstimator(seed), nil
	default:
		return nil, fmt.Errorf("unsupported proficiency mode: %s", mode)
	}
}

// enrichmentOptions never fails the run: a broken AI setup only disables the
// enrichment stage.
func enrichmentOptions(ctx context.Context, cmd *cobra.Command, cfg *AIConfig, logger *zap.Logger) []analysis.Option {
	if flag := cmd.Flag("no-ai"); flag != nil && flag.Value.String() == "true" {
		return []analysis.Option{analysis.WithStageDisabled(analysis.StageEnrich, reasonNoAIFlag)}
	}

	if cfg == nil || !cfg.Enabled {
		return []analysis.Option{analysis.WithStageDisabled(analysis.StageEnrich, reasonAIDisabled)}
	}

	enricher, err := newEnricher(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI review", zap.Error(err))
		return []analysis.Option{analysis.WithStageDisabled(analysis.StageEnrich, err.Error())}
	}

	return []analysis.Option{analysis.WithEnricher(enricher, cfg.Timeout)}
}

func newEnricher(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Enricher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewEnricher(generator, logger, cfg.Gemini.MaxLogLength), nil
}

// writeReports prints a single report as an object and several as an array.
func writeReports(stdout io.Writer, output string, reports []*analysis.Report) error {
	var payload any = reports
	if len(reports) == 1 {
		payload = reports[0]
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	pretty = append(pretty, '\n')

	if output == "" {
		_, err = stdout.Write(pretty)
		return err
	}

	if err := os.WriteFile(output, pretty, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
