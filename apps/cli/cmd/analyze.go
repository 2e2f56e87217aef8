package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/curlscope/packages/config"
	"github.com/abdul-hamid-achik/curlscope/packages/http"
	"github.com/abdul-hamid-achik/curlscope/packages/output"
	"github.com/abdul-hamid-achik/curlscope/packages/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [curl command]",
	Short: "Parse, execute and report on a curl command",
	Long: `Analyze a curl command: break down the request it describes, execute it,
and report on the response.

The command can be given as arguments, read from a file, or piped on stdin.

Examples:
  curlscope analyze 'curl https://api.example.com/users'
  curlscope analyze -- curl -X POST https://api.example.com/users -d '{"name":"ada"}'
  curlscope analyze --file request.txt
  echo 'curl https://example.com' | curlscope analyze
  curlscope analyze --json 'curl https://example.com'
  curlscope analyze --schema user.schema.json 'curl https://api.example.com/users/1'`,
	Args: cobra.ArbitraryArgs,
	RunE: analyzeCommand,
}

var (
	fileFlag     string
	jsonFlag     bool
	timeoutFlag  string
	proxyFlag    string
	insecureFlag bool
	noFollowFlag bool
	headerFlags  []string
	schemaFlag   string
	rateFlag     float64
	configFlag   string
	noColorFlag  bool
	verboseFlag  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the curl command from a file")
	analyzeCmd.Flags().BoolVar(&jsonFlag, "json", getEnvBool("CURLSCOPE_JSON", false), "Output the full report as JSON (env: CURLSCOPE_JSON)")
	analyzeCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("CURLSCOPE_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m); default is none (env: CURLSCOPE_TIMEOUT)")
	analyzeCmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("CURLSCOPE_PROXY", ""), "Proxy URL for HTTP requests (env: CURLSCOPE_PROXY)")
	analyzeCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("CURLSCOPE_INSECURE", false), "Disable SSL certificate validation (env: CURLSCOPE_INSECURE)")
	analyzeCmd.Flags().BoolVar(&noFollowFlag, "no-follow", false, "Do not follow redirects")
	analyzeCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Extra default header, 'Name: value' (repeatable)")
	analyzeCmd.Flags().StringVar(&schemaFlag, "schema", "", "JSON Schema file to validate the response body against")
	analyzeCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Rate limit in requests per second (0 = unlimited)")
	analyzeCmd.Flags().StringVar(&configFlag, "config", getEnvString("CURLSCOPE_CONFIG", ""), "Path to config file (env: CURLSCOPE_CONFIG)")
	analyzeCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("CURLSCOPE_NO_COLOR", false), "Disable colored output (env: CURLSCOPE_NO_COLOR)")
	analyzeCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Include response headers and body in console output")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	command, err := commandSource(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return &configError{err: err}
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	consoleOpts := []output.ConsoleOption{
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag),
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
	}
	console := output.NewConsoleFormatter(consoleOpts...)

	pipelineOpts := []pipeline.Option{
		pipeline.WithClient(http.NewClient(cfg.ClientOptions()...)),
	}
	if schemaFlag != "" {
		pipelineOpts = append(pipelineOpts, pipeline.WithSchemaFile(schemaFlag))
	}
	p := pipeline.New(pipelineOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := p.Run(ctx, command)
	if err != nil {
		console.FormatError(err)
		return err
	}

	if jsonFlag {
		return output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout())).FormatReport(report)
	}
	console.FormatReport(report)
	return nil
}

// commandSource resolves the curl command from arguments, --file, or stdin,
// in that order of precedence.
func commandSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		if fileFlag != "" {
			return "", &usageError{msg: "cannot combine --file with a command argument"}
		}
		return strings.Join(args, " "), nil
	}

	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("cannot read command file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		if command := strings.TrimSpace(string(data)); command != "" {
			return command, nil
		}
	}

	return "", &usageError{msg: "no curl command given (pass it as arguments, --file, or stdin)"}
}

// applyFlags layers CLI flags over the file config, flags winning.
func applyFlags(cfg *config.Config) error {
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return &usageError{msg: fmt.Sprintf("invalid timeout value %q (use format like 30s, 1m, 500ms)", timeoutFlag)}
		}
		cfg.Timeout = int(d / time.Millisecond)
	}
	if proxyFlag != "" {
		cfg.Proxy = proxyFlag
	}
	if insecureFlag {
		cfg.ValidateSSL = new(bool)
	}
	if noFollowFlag {
		cfg.FollowRedirects = new(bool)
	}
	if rateFlag > 0 {
		cfg.RateLimit = rateFlag
	}
	for _, h := range headerFlags {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return &usageError{msg: fmt.Sprintf("invalid header %q, expected 'Name: value'", h)}
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return nil
}
