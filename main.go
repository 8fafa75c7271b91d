package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/rivo/tview"

	"bithumbbot/config"
	"bithumbbot/database"
	"bithumbbot/ds"
	"bithumbbot/exchanges/bithumb"
)

const keepSnapshots = 1000

type PanelSetting struct {
	mu       sync.Mutex
	Currency string
	Depth    int
}

func (p *PanelSetting) Get() (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Currency, p.Depth
}

func (p *PanelSetting) SetCurrency(currency string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Currency = strings.ToUpper(currency)
}

var cfg config.Config
var client *bithumb.Client
var store *database.Store
var panelSetting PanelSetting

func main() {
	var err error
	cfg = config.LoadFromEnv("")

	store, err = database.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open database:", err)
		os.Exit(1)
	}
	defer store.Close()

	logfile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer logfile.Close()

	tuiInit(inputHandler)

	log.SetDefault(log.NewWithOptions(io.MultiWriter(logfile, tview.ANSIWriter(tuiLogsView)), log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "BITHUMB",
	}))
	log.SetColorProfile(termenv.ANSI256)

	client = bithumb.New(cfg.AccessKey, cfg.SecretKey,
		bithumb.WithBaseURL(cfg.BaseURL),
		bithumb.WithPaymentCurrency(cfg.PaymentCurrency))

	panelSetting.SetCurrency(cfg.Currency)
	panelSetting.Depth = cfg.OrderbookDepth

	log.Info("Starting bithumbbot ...", "currency", cfg.Currency, "trading", cfg.HasKeys())

	go func() {
		for {
			showPanel()
			time.Sleep(cfg.Refresh)
		}
	}()

	if err = tuiRun(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func showPanel() {
	ctx, cancel := requestContext()
	defer cancel()

	currency, depth := panelSetting.Get()

	text := ""
	text += "[yellow]EXCHANGE[-]: bithumb\n"
	text += "[yellow]MARKET[-]: " + currency + "/" + client.PaymentCurrency() + "\n"

	ohlc, err := client.OHLC(ctx, currency)
	if err != nil {
		log.Error("Fetching ticker failed", "currency", currency, "error", err)
		tuiWritePanel(text + "[red]unavailable[-]\n")
		return
	}
	detail, detailErr := client.MarketDetail(ctx, currency)
	if detailErr != nil {
		log.Error("Fetching market detail failed", "currency", currency, "error", detailErr)
	} else {
		journalTicker(store, currency, ohlc, detail)
	}

	text += fmt.Sprintf("[yellow]PRICE[-]: %.4f\n", ohlc.Close)
	text += dayStats(ohlc, detail, detailErr) + "\n\n"

	if cfg.HasKeys() {
		balance, err := client.Balance(ctx, currency)
		balanceStr := "[red]unknown[-]"
		if err == nil {
			balanceStr = fmt.Sprintf("%.8f (in use %.8f)  %s %.0f (in use %.0f)",
				balance.Coin, balance.CoinInUse, client.PaymentCurrency(), balance.Fiat, balance.FiatInUse)
		}
		text += "[yellow]BALANCE[-]: " + balanceStr + "\n\n"
	}

	text += "[yellow]ORDERBOOK[-]:\n"
	book, err := client.Orderbook(ctx, currency, depth)
	var bookText strings.Builder
	if err == nil {
		writer := tabwriter.NewWriter(&bookText, 0, 0, 2, ' ', 0)
		fmt.Fprintln(writer, "\tSIDE\tPRICE\tQUANTITY")
		for i := len(book.Asks) - 1; i >= 0; i-- {
			fmt.Fprintf(writer, "\task\t%.4f\t%.4f\n", book.Asks[i].Price, book.Asks[i].Quantity)
		}
		for _, level := range book.Bids {
			fmt.Fprintf(writer, "\tbid\t%.4f\t%.4f\n", level.Price, level.Quantity)
		}
		writer.Flush()
	}
	text += bookText.String() + "\n"

	if cfg.HasKeys() {
		text += "[yellow]OPEN ORDERS[-]:\n"
		orders, err := client.OpenOrders(ctx, currency)
		var ordersText strings.Builder
		if err == nil {
			writer := tabwriter.NewWriter(&ordersText, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "\tID\tSIDE\tPRICE\tUNITS\tREMAINING\tDATE")
			for _, order := range orders {
				fmt.Fprintf(writer, "\t%v\t%v\t%v\t%v\t%v\t%v\n", order["order_id"], order["type"],
					order["price"], order["units"], order["units_remaining"], order["order_date"])
			}
			writer.Flush()
		}
		text += ordersText.String() + "\n"
	}

	snapshots, err := store.RecentTickers(currency, 5)
	if err == nil && len(snapshots) > 0 {
		text += "[yellow]LAST SNAPSHOTS[-]:\n"
		var snapText strings.Builder
		writer := tabwriter.NewWriter(&snapText, 0, 0, 2, ' ', 0)
		for _, s := range snapshots {
			fmt.Fprintf(writer, "\t%s\t%.4f\t%.4f\n", s.CreatedAt.Format(time.TimeOnly), s.Close, s.Volume)
		}
		writer.Flush()
		text += snapText.String()
	}

	tuiWritePanel(text)
}

// journalTicker records a snapshot and trims the history of currency.
func journalTicker(store *database.Store, currency string, ohlc ds.OHLC, detail ds.MarketDetail) {
	if err := store.SaveTicker(currency, ohlc, detail); err != nil {
		log.Error("Saving ticker failed", "currency", currency, "error", err)
		return
	}
	if err := store.Prune(currency, keepSnapshots); err != nil {
		log.Error("Pruning tickers failed", "currency", currency, "error", err)
	}
}

func dayStats(ohlc ds.OHLC, detail ds.MarketDetail, detailErr error) string {
	avg, vol := "[red]unavailable[-]", "[red]unavailable[-]"
	if detailErr == nil {
		avg = fmt.Sprintf("%.4f", detail.Average)
		vol = fmt.Sprintf("%.4f", detail.Volume)
	}
	return fmt.Sprintf("[yellow]24H[-]: open %.4f high %.4f low %.4f avg %s vol %s",
		ohlc.Open, ohlc.High, ohlc.Low, avg, vol)
}

func parseFloatArg(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Error("Invalid argument", "value", s, "error", err.Error())
		return 0, false
	}
	return f, true
}

func inputHandler(input string) {
	splitted := strings.Fields(input)
	if len(splitted) == 0 {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	currency, _ := panelSetting.Get()
	command := strings.ToLower(splitted[0])
	args := splitted[1:]

	switch command {
	case "quit", "exit":
		tuiClose()

	case "market":
		if len(args) < 1 {
			log.Error("Invalid argument", "usage", "market <CUR>")
			return
		}
		panelSetting.SetCurrency(args[0])
		go showPanel()

	case "tickers":
		currencies, err := client.Tickers(ctx)
		if err != nil {
			log.Error("Fetching tickers failed", "error", err)
			return
		}
		log.Info("Listed markets", "count", len(currencies), "markets", strings.Join(currencies, " "))

	case "fee":
		fee, err := client.TradingFee(ctx)
		if err != nil {
			log.Error("Fetching trading fee failed", "error", err)
			return
		}
		log.Info("Trading fee", "fee", fee)

	case "address":
		addr, err := client.WalletAddress(ctx, currency)
		if err != nil {
			log.Error("Fetching wallet address failed", "error", err)
			return
		}
		log.Info("Deposit address", "currency", currency, "address", addr)

	case "buy", "sell":
		if len(args) < 2 {
			log.Error("Invalid argument", "usage", command+" <price> <units>")
			return
		}
		price, ok := parseFloatArg(args[0])
		if !ok {
			return
		}
		units := bithumb.ParseUnits(args[1]).InexactFloat64()
		side, _ := ds.ParseSide(command)
		if _, err := client.PlaceLimitOrder(ctx, currency, price, units, side); err != nil {
			log.Error("Creating order failed", "error", err.Error())
		}

	case "mbuy", "msell":
		if len(args) < 1 {
			log.Error("Invalid argument", "usage", command+" <units>")
			return
		}
		units := bithumb.ParseUnits(args[0]).InexactFloat64()
		side, _ := ds.ParseSide(strings.TrimPrefix(command, "m"))
		if _, err := client.PlaceMarketOrder(ctx, currency, units, side); err != nil {
			log.Error("Creating market order failed", "error", err.Error())
		}

	case "cancel", "status", "detail":
		if len(args) < 2 {
			log.Error("Invalid argument", "usage", command+" <bid|ask> <order id>")
			return
		}
		side, err := ds.ParseSide(args[0])
		if err != nil {
			log.Error("Invalid argument", "error", err.Error())
			return
		}
		orderCommand(ctx, command, ds.OrderDesc{Side: side, Currency: currency, OrderID: args[1]})

	case "withdraw":
		if len(args) < 2 {
			log.Error("Invalid argument", "usage", "withdraw <address> <units> [tag]")
			return
		}
		units := bithumb.ParseUnits(args[1]).InexactFloat64()
		tag := ""
		if len(args) > 2 {
			tag = args[2]
		}
		resp, err := client.Withdraw(ctx, currency, args[0], units, tag)
		if err != nil {
			log.Error("Withdrawal failed", "error", err.Error())
			return
		}
		log.Info("Withdrawal response", "status", resp["status"])

	default:
		log.Error("Unknown command", "command", command)
	}
}

func orderCommand(ctx context.Context, command string, desc ds.OrderDesc) {
	switch command {
	case "cancel":
		ok, err := client.CancelOrder(ctx, desc.Currency, desc.Side, desc.OrderID)
		if !ok {
			log.Error("Canceling failed", "order_id", desc.OrderID, "error", err)
			return
		}
		log.Info("Canceled", "order_id", desc.OrderID)

	case "status":
		units, err := client.OutstandingUnits(ctx, desc)
		if errors.Is(err, bithumb.ErrNotFound) {
			log.Info("Order is no longer open", "order_id", desc.OrderID)
			return
		}
		if err != nil {
			log.Error("Fetching order failed", "order_id", desc.OrderID, "error", err)
			return
		}
		log.Info("Outstanding units", "order_id", desc.OrderID, "units", units)

	case "detail":
		rec, err := client.CompletedOrder(ctx, desc.Currency, desc.Side, desc.OrderID)
		if errors.Is(err, bithumb.ErrNotFound) {
			log.Info("No such order", "order_id", desc.OrderID)
			return
		}
		if err != nil {
			log.Error("Fetching order detail failed", "order_id", desc.OrderID, "error", err)
			return
		}
		log.Info("Order detail", "order_id", desc.OrderID, "record", rec)
	}
}
