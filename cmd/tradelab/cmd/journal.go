package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/journal"
	"github.com/rustyeddy/tradelab/pkg/id"
	"github.com/rustyeddy/tradelab/risk"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal sessions and history logs",
	Long: `Create sessions and record trades and cash transfers against them.

Examples:
  tradelab journal session create --name "swing account" --balance 10000
  tradelab journal trade --session <id> --entry 1.1000 --stop 1.0950 --exit 1.1050:100
  tradelab journal withdraw --session <id> --amount 500
  tradelab journal list --session <id>
  tradelab journal export --session <id> --out history.csv`,
}

var journalSessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
}

var journalSessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new session",
	Args:  cobra.NoArgs,
	RunE:  runSessionCreate,
}

var journalSessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var journalSessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Compute a trade and append it to a session",
	RunE:  runJournalTrade,
}

var journalDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Record a deposit",
	RunE:  func(cmd *cobra.Command, args []string) error { return runTransfer(cmd, journal.LogDeposit) },
}

var journalWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Record a withdrawal",
	RunE:  func(cmd *cobra.Command, args []string) error { return runTransfer(cmd, journal.LogWithdrawal) },
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a session's history",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <log-id>",
	Short: "Delete a history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session's history to CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var (
	sessionName     string
	sessionBalanceF float64
	sessionCurrency string

	jSession   string
	jEntry     float64
	jStop      float64
	jRisk      float64
	jCash      float64
	jSymbol    string
	jExits     []string
	jTags      []string
	jAmount    float64
	jNote      string
	jExportOut string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionCmd)
	journalSessionCmd.AddCommand(journalSessionCreateCmd)
	journalSessionCmd.AddCommand(journalSessionListCmd)
	journalSessionCmd.AddCommand(journalSessionDeleteCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalDepositCmd)
	journalCmd.AddCommand(journalWithdrawCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalExportCmd)

	journalSessionCreateCmd.Flags().StringVar(&sessionName, "name", "", "session display name (required)")
	journalSessionCreateCmd.Flags().Float64Var(&sessionBalanceF, "balance", 0, "initial balance")
	journalSessionCreateCmd.Flags().StringVar(&sessionCurrency, "currency", "", "currency code")
	journalSessionCreateCmd.MarkFlagRequired("name")

	journalCmd.PersistentFlags().StringVarP(&jSession, "session", "s", "", "session id")

	journalTradeCmd.Flags().Float64Var(&jEntry, "entry", 0, "entry price (required)")
	journalTradeCmd.Flags().Float64Var(&jStop, "stop", 0, "stop-loss price (required)")
	journalTradeCmd.Flags().Float64Var(&jRisk, "risk", 1, "risk percent of current balance")
	journalTradeCmd.Flags().Float64Var(&jCash, "cash", 0, "cash risk amount (overrides --risk)")
	journalTradeCmd.Flags().StringVar(&jSymbol, "symbol", "EURUSD", "instrument symbol")
	journalTradeCmd.Flags().StringArrayVar(&jExits, "exit", nil, "partial exit as price:percent (repeatable)")
	journalTradeCmd.Flags().StringArrayVar(&jTags, "tag", nil, "tag for the trade (repeatable)")
	journalTradeCmd.MarkFlagRequired("entry")
	journalTradeCmd.MarkFlagRequired("stop")

	journalDepositCmd.Flags().Float64Var(&jAmount, "amount", 0, "transfer amount (required)")
	journalDepositCmd.Flags().StringVar(&jNote, "note", "", "optional note")
	journalDepositCmd.MarkFlagRequired("amount")
	journalWithdrawCmd.Flags().Float64Var(&jAmount, "amount", 0, "transfer amount (required)")
	journalWithdrawCmd.Flags().StringVar(&jNote, "note", "", "optional note")
	journalWithdrawCmd.MarkFlagRequired("amount")

	journalExportCmd.Flags().StringVarP(&jExportOut, "out", "o", "history.csv", "output CSV path")
}

func requireSession() (string, error) {
	if jSession == "" {
		return "", fmt.Errorf("--session is required")
	}
	return jSession, nil
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s := journal.Session{
		ID:             id.New(),
		Name:           sessionName,
		InitialBalance: sessionBalanceF,
		Currency:       sessionCurrency,
		CreatedAt:      time.Now().UTC(),
	}
	if s.InitialBalance == 0 {
		s.InitialBalance = cfg.Session.Balance
	}
	if s.Currency == "" {
		s.Currency = cfg.Session.Currency
	}

	if err := j.CreateSession(s); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	fmt.Printf("Created session %s (%s, %.2f %s)\n", s.ID, s.Name, s.InitialBalance, s.Currency)
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	sessions, err := j.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	for _, s := range sessions {
		fmt.Printf("%s  %-20s  %10.2f %s  %s\n",
			s.ID, s.Name, s.InitialBalance, s.Currency, s.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteSession(args[0]); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	sid, err := requireSession()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSession(sid)
	if err != nil {
		return err
	}
	logs, err := j.List(sid)
	if err != nil {
		return err
	}

	// Size against the balance as of the last journal entry.
	in := buildTradeInput(jEntry, jStop, sessionBalance(s, logs), jRisk, jCash, jSymbol)
	in.Time = time.Now().UTC()

	exits, err := parseExits(jExits)
	if err != nil {
		return err
	}
	res := risk.Compute(in, exits)

	entry := journal.HistoryLog{
		ID:   id.New(),
		Type: journal.LogTrade,
		Date: in.Time,
		Trade: &journal.TradeLog{
			Input:   in,
			Results: res,
			Tags:    jTags,
		},
	}
	if err := j.Append(sid, entry); err != nil {
		return fmt.Errorf("append trade: %w", err)
	}

	printCalculation(cmd.OutOrStdout(), in, res)
	fmt.Printf("Logged trade %s\n", entry.ID)
	return nil
}

func runTransfer(cmd *cobra.Command, typ journal.LogType) error {
	sid, err := requireSession()
	if err != nil {
		return err
	}
	if jAmount <= 0 {
		return fmt.Errorf("--amount must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSession(sid)
	if err != nil {
		return err
	}
	logs, err := j.List(sid)
	if err != nil {
		return err
	}

	balance := sessionBalance(s, logs)
	if typ == journal.LogWithdrawal {
		balance -= jAmount
	} else {
		balance += jAmount
	}

	entry := journal.HistoryLog{
		ID:   id.New(),
		Type: typ,
		Date: time.Now().UTC(),
		Transfer: &journal.TransferLog{
			Amount:  jAmount,
			Balance: balance,
			Note:    jNote,
		},
	}
	if err := j.Append(sid, entry); err != nil {
		return fmt.Errorf("append transfer: %w", err)
	}

	fmt.Printf("Recorded %s of %.2f, balance %.2f\n", typ, jAmount, balance)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	sid, err := requireSession()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	logs, err := j.List(sid)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	for _, l := range logs {
		switch {
		case l.Type == journal.LogTrade && l.Trade != nil:
			fmt.Printf("%s  %s  TRADE     %-8s net %10.2f\n",
				l.ID, l.Date.Format("2006-01-02 15:04"), l.Trade.Input.Symbol, l.NetProfit())
		case l.Transfer != nil:
			fmt.Printf("%s  %s  %-9s amount %8.2f\n",
				l.ID, l.Date.Format("2006-01-02 15:04"), l.Type, l.Transfer.Amount)
		}
	}
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	sid, err := requireSession()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteLog(sid, args[0]); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	fmt.Printf("Deleted log %s\n", args[0])
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	sid, err := requireSession()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	logs, err := j.List(sid)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	if err := journal.ExportCSV(jExportOut, logs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("Exported %d entries to %s\n", len(logs), jExportOut)
	return nil
}
