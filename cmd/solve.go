package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskhive-io/taskhive-go/solver"
)

var (
	solveProxy   string
	pageURL      string
	siteKey      string
	tsAction     string
	tsCData      string
	scriptURL    string
	solveMethod  string
	arkosePubKey string
	arkoseJSURL  string
)

// solveCmd represents the solve command group
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve an anti-bot challenge",
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.PersistentFlags().StringVar(&solveProxy, "proxy", "", "proxy to solve through (default from config)")

	solveCmd.AddCommand(turnstileCmd)
	turnstileCmd.Flags().StringVar(&pageURL, "url", "", "page URL hosting the challenge")
	turnstileCmd.Flags().StringVar(&siteKey, "site-key", "", "Turnstile site key")
	turnstileCmd.Flags().StringVar(&tsAction, "action", "", "expected action value")
	turnstileCmd.Flags().StringVar(&tsCData, "cdata", "", "cData blob")

	solveCmd.AddCommand(kasadaCmd)
	kasadaCmd.Flags().StringVar(&scriptURL, "script-url", "", "Kasada ips.js script URL")
	kasadaCmd.Flags().StringVar(&solveMethod, "method", "", "HTTP method the headers will be used with (default POST)")

	solveCmd.AddCommand(akamaiCmd)
	akamaiCmd.Flags().StringVar(&pageURL, "url", "", "page URL protected by Akamai")

	solveCmd.AddCommand(arkoseCmd)
	arkoseCmd.Flags().StringVar(&pageURL, "url", "", "page URL hosting the challenge")
	arkoseCmd.Flags().StringVar(&arkosePubKey, "public-key", "", "Arkose public key (app id)")
	arkoseCmd.Flags().StringVar(&arkoseJSURL, "api-js-url", "", "self-hosted api.js URL")
}

// effectiveProxy returns the --proxy flag or the configured default.
func effectiveProxy() string {
	if solveProxy != "" {
		return solveProxy
	}
	return cfg.Proxy.Default
}

var turnstileCmd = &cobra.Command{
	Use:   "turnstile",
	Short: "Solve a Cloudflare Turnstile challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := solveClient.SolveTurnstile(cmd.Context(), solver.TurnstileInput{
			Proxy:   effectiveProxy(),
			PageURL: pageURL,
			SiteKey: siteKey,
			Action:  tsAction,
			CData:   tsCData,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var kasadaCmd = &cobra.Command{
	Use:   "kasada",
	Short: "Solve a Kasada challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := solveClient.SolveKasada(cmd.Context(), solver.KasadaInput{
			Proxy:      effectiveProxy(),
			ScriptURL:  scriptURL,
			HTTPMethod: solveMethod,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var akamaiCmd = &cobra.Command{
	Use:   "akamai",
	Short: "Generate Akamai sensor cookies",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := solveClient.SolveAkamai(cmd.Context(), solver.AkamaiInput{
			Proxy:   effectiveProxy(),
			PageURL: pageURL,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var arkoseCmd = &cobra.Command{
	Use:   "arkose",
	Short: "Solve an Arkose Labs challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := solveClient.SolveArkose(cmd.Context(), solver.ArkoseInput{
			Proxy:     effectiveProxy(),
			PageURL:   pageURL,
			PublicKey: arkosePubKey,
			APIJSURL:  arkoseJSURL,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}
