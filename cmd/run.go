package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/pivot-navigator/internal/ai"
	"github.com/spigell/pivot-navigator/internal/ai/gemini"
	"github.com/spigell/pivot-navigator/internal/catalog"
	"github.com/spigell/pivot-navigator/internal/engine"
	"github.com/spigell/pivot-navigator/internal/export"
	"github.com/spigell/pivot-navigator/internal/logger"
	"github.com/spigell/pivot-navigator/internal/profile"
	"github.com/spigell/pivot-navigator/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes  = "Yes"
	PromptNo   = "No"
	PromptAll  = "All of them"
	PromptSkip = "Skip the detailed plan"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive career pivot analysis",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask questions, take all input from the config profile section")
	runCmd.Flags().Bool("no-ai", false, "skip text generation, show deterministic matching and difficulty only")
	runCmd.Flags().StringP("catalog", "c", "", "career dataset file. Default is the embedded catalog.")

	viper.BindPFlag("catalog", runCmd.Flags().Lookup("catalog"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the pivot-navigator", zap.String("version", version))

	cat := loadCatalog(config, logger)
	logger.Info("career catalog loaded", zap.Int("careers", cat.Len()))

	interactive := cmd.Flag("auto-approve").Value.String() == "false"

	userProfile, err := collectProfile(config, interactive)
	if err != nil {
		logger.Fatal("collecting user input", zap.Error(err))
	}

	if err := userProfile.Validate(); err != nil {
		logger.Fatal("incomplete user input",
			zap.Error(err),
			zap.String("hint", "answer the prompts or fill the profile section of the config file"),
		)
	}

	advisor := prepareAdvisor(ctx, cmd, config, logger)

	matches := engine.FindMatches(userProfile.Skills, userProfile.PainPoints, cat)
	logger.Info("matching finished", zap.Int("matches", len(matches)))

	report := &export.Report{Profile: userProfile}

	if advisor != nil {
		analysis, err := advisor.PivotAnalysis(ctx, &ai.AnalysisRequest{Profile: userProfile, Matches: matches})
		if err != nil {
			// The deterministic results are still worth presenting.
			logger.Warn("pivot analysis failed, continuing without it", zap.Error(err))
		} else {
			fmt.Printf("\nCAREER PIVOT ANALYSIS\n\n%s\n", analysis)
			report.Analysis = analysis
		}
	}

	if len(matches) == 0 {
		fmt.Println("\nSorry, no career matches found. Try broader skill or pain-point terms.")
		return
	}

	printMatches(matches)

	selected := selectCareers(matches, interactive, logger)

	for _, target := range selected {
		report.Careers = append(report.Careers, buildCareerReport(ctx, advisor, userProfile, target, cat, logger))
	}

	if advisor != nil && interactive && len(selected) > 0 {
		offerOutreach(ctx, advisor, userProfile, selected[0], logger)
	}

	if len(report.Careers) == 0 && report.Analysis == "" {
		return
	}

	exportReport(report, config, interactive, logger)

	fmt.Println("\nRemember: you don't need permission to pivot. You need a plan.")
}

func loadCatalog(config *Config, logger *zap.Logger) *catalog.Catalog {
	path := strings.TrimSpace(viper.GetString("catalog"))
	if path == "" && config.Catalog != "" {
		path = config.Catalog
	}

	if path == "" {
		return catalog.Default(logger)
	}
	return catalog.Load(path, logger)
}

func collectProfile(config *Config, interactive bool) (*profile.Profile, error) {
	defaults := config.Profile
	if defaults == nil {
		defaults = &ProfileConfig{}
	}

	raw := profile.RawInput{
		Name:             defaults.Name,
		CurrentRole:      defaults.CurrentRole,
		Skills:           defaults.Skills,
		Hates:            defaults.Hates,
		Interests:        defaults.Interests,
		Constraints:      defaults.Constraints,
		Budget:           defaults.Budget,
		TimeAvailability: defaults.TimeAvailability,
		RemotePreference: defaults.RemotePreference,
	}

	if !interactive {
		return profile.Normalize(raw), nil
	}

	fmt.Println("\nLet's understand your career situation.")

	questions := []struct {
		label  string
		target *string
	}{
		{"What's your name? (or 'Anonymous')", &raw.Name},
		{"What's your current role/job title?", &raw.CurrentRole},
		{"List your skills (comma-separated)", &raw.Skills},
		{"What do you HATE about your current situation? (comma-separated)", &raw.Hates},
		{"What interests or excites you? (comma-separated)", &raw.Interests},
		{"Any constraints we should know? (care responsibilities, health, etc.)", &raw.Constraints},
		{"Hours per week you can dedicate (e.g. '5-10')", &raw.TimeAvailability},
	}

	for _, q := range questions {
		answer, err := askText(q.label, *q.target)
		if err != nil {
			return nil, err
		}
		*q.target = answer
	}

	budget, err := askSelect("Budget for transition", []string{"low", "medium", "high"})
	if err != nil {
		return nil, err
	}
	raw.Budget = budget

	remote, err := askSelect("Remote work preference", []string{"high", "medium", "low"})
	if err != nil {
		return nil, err
	}
	raw.RemotePreference = remote

	return profile.Normalize(raw), nil
}

func askText(label, preset string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: preset,
	}
	answer, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return answer, nil
}

func askSelect(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, answer, err := prompt.Run()
	return answer, err
}

func prepareAdvisor(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) ai.Advisor {
	if cmd.Flag("no-ai").Value.String() == "true" {
		log.Info("skipping text generation", zap.String("reason", "no-ai flag is set"))
		return nil
	}

	if config.AI == nil || !config.AI.Enabled {
		log.Info("skipping text generation", zap.String("reason", "ai is not enabled in the config"))
		return nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("unsupported ai provider, continuing without text generation", zap.String("provider", config.AI.Provider))
		return nil
	}

	geminiCfg := config.AI.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  geminiAPIKeyEnv,
	})
	if err != nil {
		log.Warn("gemini api key is not available, continuing without text generation",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or the GEMINI_API_KEY environment variable"),
		)
		return nil
	}

	advisorLogger := logger.WithAdvisorFields(log, "gemini", geminiCfg.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, advisorLogger)
	if err != nil {
		log.Warn("building the gemini generator failed, continuing without text generation", zap.Error(err))
		return nil
	}

	return gemini.NewAdvisor(generator, advisorLogger, geminiCfg.MaxLogLength)
}

func printMatches(matches []*catalog.CareerRecord) {
	fmt.Printf("\nTOP CAREER MATCHES\n\n")
	for i, career := range matches {
		fmt.Printf("%d. %s\n", i+1, career.Title)
		if len(career.SalaryRange) == 2 {
			fmt.Printf("   Salary: $%d - $%d\n", career.SalaryRange[0], career.SalaryRange[1])
		}
		fmt.Printf("   Remote: %s\n", yesNo(career.Remote))
		fmt.Printf("   Freelance Viable: %s\n\n", yesNo(career.FreelanceViable))
	}
}

// selectCareers asks which matches deserve a detailed plan. Non-interactive
// runs take all of them.
func selectCareers(matches []*catalog.CareerRecord, interactive bool, logger *zap.Logger) []*catalog.CareerRecord {
	if !interactive {
		return matches
	}

	items := make([]string, 0, len(matches)+2)
	for _, career := range matches {
		items = append(items, career.Title)
	}
	items = append(items, PromptAll, PromptSkip)

	prompt := promptui.Select{
		Label: "Which career would you like a detailed plan for?",
		Items: items,
	}

	idx, answer, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	switch answer {
	case PromptAll:
		return matches
	case PromptSkip:
		return nil
	default:
		return matches[idx : idx+1]
	}
}

func buildCareerReport(ctx context.Context, advisor ai.Advisor, userProfile *profile.Profile, target *catalog.CareerRecord, cat *catalog.Catalog, logger *zap.Logger) *export.CareerReport {
	result := &export.CareerReport{Career: target}

	result.Difficulty = engine.EstimateDifficulty(target.ID, userProfile.Skills, cat)
	if !result.Difficulty.Unknown() {
		fmt.Printf("\nTRANSITION DIFFICULTY FOR %s\n", strings.ToUpper(target.Title))
		fmt.Printf("Difficulty: %s, estimated timeline: %s months, skill match: %d%%\n",
			result.Difficulty.Difficulty,
			result.Difficulty.EstimatedMonths,
			result.Difficulty.SkillMatchPercentage,
		)
		if len(result.Difficulty.SkillsToDevelop) > 0 {
			fmt.Printf("Skills to develop: %s\n", strings.Join(result.Difficulty.SkillsToDevelop, ", "))
		}
	}

	if advisor == nil {
		return result
	}

	planReq := &ai.PlanRequest{Profile: userProfile, Target: target}

	sections := []struct {
		title    string
		target   *string
		generate func() (string, error)
	}{
		{"GENERATING 3-STEP PLAN", &result.Plan, func() (string, error) {
			return advisor.ThreeStepPlan(ctx, planReq)
		}},
		{"HOW TO EARN DURING THE PIVOT", &result.Monetization, func() (string, error) {
			return advisor.Monetization(ctx, planReq)
		}},
		{"RESUME REFRAMING", &result.ResumeReframe, func() (string, error) {
			return advisor.ResumeReframe(ctx, &ai.ReframeRequest{Profile: userProfile, Target: target})
		}},
		{"MINDSET COACHING", &result.Coaching, func() (string, error) {
			return advisor.MindsetCoaching(ctx, &ai.CoachingRequest{Profile: userProfile})
		}},
	}

	for _, section := range sections {
		text, err := section.generate()
		if err != nil {
			logger.Warn("text generation failed, section skipped",
				zap.String("section", section.title),
				zap.String("career_id", target.ID),
				zap.Error(err),
			)
			continue
		}
		fmt.Printf("\n%s: %s\n\n%s\n", section.title, target.Title, text)
		*section.target = text
	}

	return result
}

// offerOutreach generates a networking message template for the first chosen
// career. Purely additive: a declined prompt or a failed generation changes
// nothing else in the run.
func offerOutreach(ctx context.Context, advisor ai.Advisor, userProfile *profile.Profile, target *catalog.CareerRecord, logger *zap.Logger) {
	answer, err := askSelect("Want a networking outreach message for "+target.Title+"?", []string{PromptYes, PromptNo})
	if err != nil || answer == PromptNo {
		return
	}

	motivation, err := askText("Why does this role appeal to you? (optional)", "")
	if err != nil {
		return
	}

	message, err := advisor.OutreachMessage(ctx, &ai.OutreachRequest{
		Profile:    userProfile,
		Target:     target,
		Motivation: motivation,
		Goal:       "a 15-minute chat about their career path",
	})
	if err != nil {
		logger.Warn("outreach message generation failed", zap.Error(err))
		return
	}

	fmt.Printf("\nOUTREACH MESSAGE TEMPLATE\n\n%s\n", message)
}

func exportReport(report *export.Report, config *Config, interactive bool, logger *zap.Logger) {
	exportCfg := config.Export
	if exportCfg == nil {
		exportCfg = &ExportConfig{}
	}

	format := exportCfg.Format

	if interactive {
		answer, err := askSelect("Export your plan?", []string{PromptYes, PromptNo})
		if err != nil || answer == PromptNo {
			if err != nil && !errors.Is(err, promptui.ErrInterrupt) {
				logger.Warn("export prompt failed", zap.Error(err))
			}
			return
		}

		if format == "" {
			format, err = askSelect("Format", []string{export.FormatMarkdown, export.FormatJSON})
			if err != nil {
				logger.Warn("export prompt failed", zap.Error(err))
				return
			}
		}
	}

	path, err := export.Write(report, exportCfg.Dir, format)
	if err != nil {
		logger.Warn("exporting the plan failed", zap.Error(err))
		return
	}

	logger.Info("plan exported", zap.String("path", path))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
