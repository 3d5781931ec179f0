// Command test is a smoke-test client for a running persona insights server.
//
// Usage:
//
//	test all [--url=http://localhost:8080]
//	test health | agent-card | insights | a2a
//	test custom --age=34 --occupation=office_worker --challenge="time management"
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	baseURL string
	timeout time.Duration
}

var customFlags struct {
	age        int
	occupation string
	location   string
	interests  []string
	challenges []string
	a2a        bool
}

var rootCmd = &cobra.Command{
	Use:   "test",
	Short: "Smoke tests for the persona insights server",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.baseURL, "url", "http://localhost:8080", "Base URL of the server")
	pf.DurationVar(&rootFlags.timeout, "timeout", 90*time.Second, "Per-request timeout")

	rootCmd.AddCommand(
		checkCommand("all", "Run health, agent-card, insights and a2a checks", (*TestClient).runAll),
		checkCommand("health", "Check GET /health", (*TestClient).testHealthCheck),
		checkCommand("agent-card", "Check the A2A agent card", (*TestClient).testAgentCard),
		checkCommand("insights", "Generate insights for the sample persona over the JSON API", (*TestClient).testSampleInsights),
		checkCommand("a2a", "Generate insights for the sample persona over A2A", (*TestClient).testSampleA2A),
		customCmd,
	)

	f := customCmd.Flags()
	f.IntVar(&customFlags.age, "age", 30, "Persona age (10-100)")
	f.StringVar(&customFlags.occupation, "occupation", "", "Occupation option value")
	f.StringVar(&customFlags.location, "location", "", "Location option value")
	f.StringSliceVar(&customFlags.interests, "interest", nil, "Interest option values")
	f.StringSliceVar(&customFlags.challenges, "challenge", nil, "Challenge text (repeatable, 1-5)")
	f.BoolVar(&customFlags.a2a, "a2a", false, "Send over the A2A endpoint instead of the JSON API")
	_ = customCmd.MarkFlagRequired("challenge")
}

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Generate insights for a persona given on the command line",
	RunE: func(_ *cobra.Command, _ []string) error {
		req := insightRequest{
			Persona: map[string]any{
				"age":        customFlags.age,
				"occupation": customFlags.occupation,
				"location":   customFlags.location,
				"interests":  customFlags.interests,
			},
			Challenges: customFlags.challenges,
		}
		tc := newClient()
		check := tc.testInsights
		if customFlags.a2a {
			check = tc.testA2A
		}
		if !check(req) {
			return fmt.Errorf("custom check failed")
		}
		return nil
	},
}

func checkCommand(use, short string, check func(*TestClient) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !check(newClient()) {
				return fmt.Errorf("%s check failed", use)
			}
			return nil
		},
	}
}

func newClient() *TestClient {
	printHeader("Persona Insights - Test Suite")
	fmt.Println(infoStyle.Render("Base URL: " + rootFlags.baseURL))
	fmt.Println()
	return NewTestClient(rootFlags.baseURL, rootFlags.timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
