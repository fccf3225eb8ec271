package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"studentinsight.dev/dashboard/internal/app"
	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/students"
	"studentinsight.dev/dashboard/internal/summary"
)

// serverConfig is everything main needs to build the Application.
type serverConfig struct {
	app        app.Config
	dataset    dataset.Config
	summarizer summary.GeminiConfig
	verbose    bool
}

// parseConfig reads flags, overlays the optional YAML file for every flag
// that was not given explicitly, and takes the Gemini key from the
// environment.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (serverConfig, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		port          int
		env           string
		apiKeysFlag   string
		rateLimit     int
		maxSelection  int
		datasetURL    string
		policyFlag    string
		timeout       time.Duration
		model         string
		configFile    string
		verbose       bool
		geminiDefault = summary.DefaultGeminiConfig("")
	)

	fs.IntVar(&port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (negative disables)")
	fs.IntVar(&maxSelection, "max-selection", 50, "Maximum number of students per analysis")
	fs.StringVar(&datasetURL, "dataset-url", "testdata/students.csv", "URL or local path of the student CSV dataset")
	fs.StringVar(&policyFlag, "score-policy", string(students.DefaultScorePolicy), "Score policy (collect|sum|mean)")
	fs.DurationVar(&timeout, "dataset-timeout", dataset.DefaultTimeout, "Timeout for downloading the dataset")
	fs.StringVar(&model, "model", geminiDefault.Model, "Gemini model used for summaries")
	fs.StringVar(&configFile, "config", "", "Optional YAML configuration file")
	fs.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return serverConfig{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	temperature := geminiDefault.Temperature
	if configFile != "" {
		file, err := appconf.LoadFile(configFile)
		if err != nil {
			return serverConfig{}, err
		}
		if file.Port != 0 && !explicit["port"] {
			port = file.Port
		}
		if file.Env != "" && !explicit["env"] {
			env = file.Env
		}
		if len(file.APIKeys) > 0 && !explicit["api-keys"] {
			apiKeysFlag = strings.Join(file.APIKeys, ",")
		}
		if file.RateLimit != 0 && !explicit["rate-limit"] {
			rateLimit = file.RateLimit
		}
		if file.Dataset.URL != "" && !explicit["dataset-url"] {
			datasetURL = file.Dataset.URL
		}
		if file.Dataset.ScorePolicy != "" && !explicit["score-policy"] {
			policyFlag = file.Dataset.ScorePolicy
		}
		if file.Dataset.Timeout != "" && !explicit["dataset-timeout"] {
			d, err := time.ParseDuration(file.Dataset.Timeout)
			if err != nil {
				return serverConfig{}, fmt.Errorf("invalid dataset timeout %q: %w", file.Dataset.Timeout, err)
			}
			timeout = d
		}
		if file.Summarizer.Model != "" && !explicit["model"] {
			model = file.Summarizer.Model
		}
		if file.Summarizer.Temperature != nil {
			temperature = *file.Summarizer.Temperature
		}
	}

	policy, err := students.ParseScorePolicy(policyFlag)
	if err != nil {
		return serverConfig{}, err
	}

	var apiKeys []string
	for _, key := range strings.Split(apiKeysFlag, ",") {
		if key = strings.TrimSpace(key); key != "" {
			apiKeys = append(apiKeys, key)
		}
	}

	environment := appconf.EnvFlagToEnvironment(env)

	gemini := summary.DefaultGeminiConfig(getenv("GEMINI_API_KEY"))
	gemini.Model = model
	gemini.Temperature = temperature

	return serverConfig{
		app: app.Config{
			Port:         port,
			Env:          environment,
			ApiKeys:      apiKeys,
			RateLimit:    rateLimit,
			MaxSelection: maxSelection,
		},
		dataset: dataset.Config{
			SourceURL:   datasetURL,
			ScorePolicy: policy,
			Timeout:     timeout,
			Env:         environment,
			Verbose:     verbose,
		},
		summarizer: gemini,
		verbose:    verbose,
	}, nil
}
