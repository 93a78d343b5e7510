package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/expense"
	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/extraction"
	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/ledger"
	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/status"
	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/telegram"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// The env file has to be loaded before flag parsing so its variables are
	// visible to the EXPENSE_BOT_* lookups
	envFile := envFileArg(os.Args[1:])
	if err := godotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			slog.Error("Failed to load env file", "path", envFile, "error", err)
			os.Exit(1)
		}
		slog.Debug("No env file found", "path", envFile)
	}

	fs := ff.NewFlagSet("expense-bot")
	var (
		telegramToken       = fs.StringLong("telegram-token", "", "Telegram bot token (or set TELEGRAM_BOT_TOKEN env var)")
		generatorType       = fs.StringLong("generator", "gemini", "Generator type: 'gemini' or 'ollama'")
		geminiKey           = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GOOGLE_API_KEY env var)")
		geminiModel         = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model for receipt extraction")
		geminiInsightsModel = fs.StringLong("gemini-insights-model", "gemini-2.5-flash", "Google Gemini model for category and memo generation")
		ollamaURL           = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel         = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		ledgerType          = fs.StringLong("ledger", "sheets", "Ledger backend: 'sheets', 'csv' or 'postgres'")
		sheetsCredentials   = fs.StringLong("sheets-credentials", "credentials.json", "Google service account credentials file")
		sheetsID            = fs.StringLong("sheets-id", "", "Google Sheets spreadsheet ID (or set GOOGLE_SHEET_ID env var)")
		sheetName           = fs.StringLong("sheet-name", "Sheet1", "Sheet name inside the spreadsheet")
		csvPath             = fs.StringLong("csv-path", "expenses.csv", "CSV ledger file path")
		postgresDSN         = fs.StringLong("postgres-dsn", "", "Postgres connection string (or set DATABASE_URL env var)")
		dbPath              = fs.StringLong("db", "expense-bot.db", "Offset database file path")
		port                = fs.IntLong("port", 8080, "Status server port")
		authUser            = fs.StringLong("auth-user", "", "Basic auth username for the stats endpoint (optional)")
		authPass            = fs.StringLong("auth-pass", "", "Basic auth password for the stats endpoint (optional)")
		dropPending         = fs.BoolLong("drop-pending", "Discard updates that queued up while the bot was offline")
		showVersion         = fs.BoolLong("version", "Show version information")
	)
	_ = fs.StringLong("env-file", "config.env", "Env file to load before flag parsing")

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("EXPENSE_BOT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize offset store
	slog.Info("Initializing offset store...")
	offsets, err := telegram.NewBoltOffsetStore(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize offset store", "error", err)
		os.Exit(1)
	}
	defer offsets.Close()

	// Initialize generators based on type. Gemini gets a separate, cheaper
	// model for insights; Ollama shares one local model for both stages.
	var (
		extractGen  extraction.Generator
		insightsGen extraction.Generator
	)
	switch *generatorType {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GOOGLE_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini generators...", "model", *geminiModel, "insights_model", *geminiInsightsModel)
		extractGen, err = extraction.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		insightsGen, err = extraction.NewGemini(apiKey, *geminiInsightsModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama generator...", "url", *ollamaURL, "model", *ollamaModel)
		gen, genErr := extraction.NewOllama(*ollamaURL, *ollamaModel)
		if genErr != nil {
			slog.Error("Failed to initialize Ollama", "error", genErr)
			os.Exit(1)
		}
		extractGen, insightsGen = gen, gen
	default:
		slog.Error("Invalid generator type", "type", *generatorType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	defer extractGen.Close()
	if insightsGen != extractGen {
		defer insightsGen.Close()
	}

	// Initialize ledger backend based on type
	var ledgerBackend ledger.Appender
	switch *ledgerType {
	case "sheets":
		spreadsheetID := *sheetsID
		if spreadsheetID == "" {
			spreadsheetID = os.Getenv("GOOGLE_SHEET_ID")
		}
		slog.Info("Initializing Google Sheets ledger...", "spreadsheet_id", spreadsheetID, "sheet", *sheetName)
		ledgerBackend, err = ledger.NewSheets(ctx, *sheetsCredentials, spreadsheetID, *sheetName)
		if err != nil {
			slog.Error("Failed to initialize Google Sheets ledger", "error", err)
			os.Exit(1)
		}
	case "csv":
		slog.Info("Initializing CSV ledger...", "path", *csvPath)
		ledgerBackend, err = ledger.NewCSV(*csvPath)
		if err != nil {
			slog.Error("Failed to initialize CSV ledger", "error", err)
			os.Exit(1)
		}
	case "postgres":
		dsn := *postgresDSN
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		slog.Info("Initializing Postgres ledger...")
		ledgerBackend, err = ledger.NewPostgres(ctx, dsn)
		if err != nil {
			slog.Error("Failed to initialize Postgres ledger", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid ledger type", "type", *ledgerType, "valid", "sheets, csv or postgres")
		os.Exit(1)
	}
	defer ledgerBackend.Close()

	// Get Telegram token from flag or environment
	token := *telegramToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if token == "" {
		slog.Error("Telegram bot token is required. Set --telegram-token flag or TELEGRAM_BOT_TOKEN environment variable")
		os.Exit(1)
	}

	slog.Info("Initializing Telegram bot...")
	bot, err := telegram.NewBot(token, offsets, *dropPending)
	if err != nil {
		slog.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline service
	service := expense.NewService(
		extraction.NewExtractor(extractGen),
		extraction.NewEnricher(insightsGen),
		ledgerBackend,
		bot.Sender(),
	)

	// Start status server in goroutine
	basicAuth := status.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	statusServer := status.NewServer(service, basicAuth, version)
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := statusServer.Start(addr); err != nil {
			slog.Error("Status server error", "error", err)
			os.Exit(1)
		}
	}()

	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Cancel the run context on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutting down...")
		cancel()
	}()

	if err := bot.Run(ctx, service); err != nil {
		slog.Error("Bot stopped", "error", err)
		os.Exit(1)
	}
}

// envFileArg pulls the --env-file value out of raw arguments before parsing
func envFileArg(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--env-file" || arg == "-env-file":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		case strings.HasPrefix(arg, "-env-file="):
			return strings.TrimPrefix(arg, "-env-file=")
		}
	}
	return "config.env"
}
