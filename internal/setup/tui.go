package setup

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/hyunwoolee/wonfolio/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

func clearAndHeader(step string) {
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("WONFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render(step))
}

// RunTUI launches the terminal configuration wizard and writes the resulting
// yaml to path. Credentials are not asked for here: they stay in the
// environment (.env), the wizard only reminds which variables each enabled
// venue needs.
func RunTUI(path string) error {
	var (
		venues        []string
		intervalStr   = "10m"
		dashboardAddr = "localhost:8877"
		solanaAccount string
		solanaTokens  string
		ethAddress    string
		hlAddress     string
		manual        string
		confirm       bool
	)

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("WONFOLIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("One valued view of everything you hold.\n"))

	clearAndHeader("STEP 1: VENUES")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which venues hold your assets?").
				Options(
					huh.NewOption("Upbit", "upbit"),
					huh.NewOption("Bithumb", "bithumb"),
					huh.NewOption("Coinone", "coinone"),
					huh.NewOption("Korbit", "korbit"),
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
					huh.NewOption("Phantom (Solana wallet)", "phantom"),
					huh.NewOption("Ethereum wallet", "ethereum"),
				).
				Value(&venues),
		),
	).Run()
	if err != nil {
		return err
	}

	if contains(venues, "phantom") {
		clearAndHeader("STEP 2: SOLANA WALLET")
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Solana account address").
					Value(&solanaAccount).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("account cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("SPL tokens").
					Description("Comma-separated SYMBOL=mint pairs, empty for SOL only").
					Value(&solanaTokens),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	if contains(venues, "ethereum") {
		clearAndHeader("STEP 3: ETHEREUM WALLET")
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ethereum address").
					Value(&ethAddress).
					Validate(func(s string) error {
						if !strings.HasPrefix(s, "0x") {
							return fmt.Errorf("address must start with 0x")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	if contains(venues, "hyperliquid") {
		clearAndHeader("STEP 4: HYPERLIQUID ACCOUNT")
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Hyperliquid account address").
					Description("Read-only; no signing key is needed or asked for").
					Value(&hlAddress).
					Validate(func(s string) error {
						if !strings.HasPrefix(s, "0x") {
							return fmt.Errorf("address must start with 0x")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	clearAndHeader("STEP 5: TIMING & EXTRAS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Poll interval").
				Description("Duration string (e.g. 5m, 10m, 1h)").
				Value(&intervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewInput().
				Title("Dashboard address").
				Description("host:port for the web dashboard").
				Value(&dashboardAddr),
			huh.NewInput().
				Title("Manual holdings").
				Description("Comma-separated SYMBOL=quantity pairs for assets outside any venue").
				Value(&manual).
				Validate(validateHoldings),
		),
	).Run()
	if err != nil {
		return err
	}

	clearAndHeader("FINAL CONFIRMATION")
	summary := fmt.Sprintf("Venues: %s\nInterval: %s\nDashboard: %s\n",
		strings.Join(venues, ", "), intervalStr, dashboardAddr)
	if envVars := requiredEnv(venues); envVars != "" {
		summary += "\nRemember to set in .env:\n" + envVars
	}
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	interval, _ := time.ParseDuration(intervalStr)
	cfg := &config.Config{
		Interval:           interval,
		DashboardAddr:      dashboardAddr,
		PriceSources:       config.DefaultPriceSources,
		SolanaAccount:      solanaAccount,
		SolanaTokens:       parsePairs(solanaTokens),
		EthereumAddress:    ethAddress,
		HyperliquidAddress: hlAddress,
		ManualHoldings:     parsePairs(manual),
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).
		Render(fmt.Sprintf("\n✓ Configuration saved to %s", path)))
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// parsePairs turns "SYM=value,SYM2=value2" into a map.
func parsePairs(s string) map[string]string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return out
}

func validateHoldings(s string) error {
	for sym, qty := range parsePairs(s) {
		if _, err := decimal.NewFromString(qty); err != nil {
			return fmt.Errorf("invalid quantity for %s", sym)
		}
	}
	return nil
}

func requiredEnv(venues []string) string {
	vars := map[string][]string{
		"upbit":   {"UPBIT_ACCESS_KEY", "UPBIT_SECRET_KEY"},
		"bithumb": {"BITHUMB_ACCESS_KEY", "BITHUMB_SECRET_KEY"},
		"coinone": {"COINONE_ACCESS_KEY", "COINONE_SECRET_KEY"},
		"korbit":  {"KORBIT_ACCESS_KEY", "KORBIT_SECRET_KEY"},
		"binance": {"BINANCE_API_KEY", "BINANCE_API_SECRET"},
		"bybit":   {"BYBIT_API_KEY", "BYBIT_API_SECRET"},
	}

	var lines []string
	for _, venue := range venues {
		if names, ok := vars[venue]; ok {
			lines = append(lines, "  "+strings.Join(names, ", "))
		}
	}
	return strings.Join(lines, "\n")
}
