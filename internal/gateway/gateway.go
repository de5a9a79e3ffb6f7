// Package gateway implements the websocket event feed both platforms
// expose. The protocol is the usual hello/identify/heartbeat handshake
// followed by a stream of dispatch payloads.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/KartoffelChipss/bifrost/internal/platform/worker"
)

// Gateway opcodes.
const (
	opDispatch     = 0
	opHeartbeat    = 1
	opIdentify     = 2
	opHello        = 10
	opHeartbeatACK = 11
)

const (
	reconnectDelay   = 5 * time.Second
	defaultHeartbeat = 41250 * time.Millisecond
)

type payload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  int64           `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type identifyData struct {
	Token   string `json:"token"`
	Intents int    `json:"intents"`
}

// EventHandler receives one dispatch event. Handlers run on their own
// goroutine per event; panics are recovered and logged.
type EventHandler func(ctx context.Context, event string, data json.RawMessage)

type Config struct {
	Name    string
	URL     string
	Token   string
	Intents int
	OnEvent EventHandler
	Logger  zerolog.Logger
}

// Gateway maintains one websocket connection and redials forever on
// failure. Missed events during a reconnect are lost; the bridge is at
// most once end to end anyway.
type Gateway struct {
	cfg    Config
	logger zerolog.Logger
	seq    atomic.Int64
}

func New(cfg Config) *Gateway {
	return &Gateway{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "gateway").Str("platform", cfg.Name).Logger(),
	}
}

// Run blocks until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	for {
		err := g.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		g.logger.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("gateway connection lost")

		if err := worker.Wait(ctx, reconnectDelay); err != nil {
			return err
		}
	}
}

func (g *Gateway) runOnce(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, g.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	conn.SetReadLimit(-1)

	interval, err := g.handshake(ctx, conn)
	if err != nil {
		return err
	}

	g.logger.Info().Msg("gateway connected")

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()

	go g.heartbeatLoop(heartbeatCtx, conn, interval)

	return g.readLoop(ctx, conn)
}

// handshake waits for hello, sends identify and returns the heartbeat
// interval the server asked for.
func (g *Gateway) handshake(ctx context.Context, conn *websocket.Conn) (time.Duration, error) {
	msg, err := g.read(ctx, conn)
	if err != nil {
		return 0, fmt.Errorf("read hello: %w", err)
	}

	if msg.Op != opHello {
		return 0, fmt.Errorf("expected hello, got op %d", msg.Op)
	}

	interval := defaultHeartbeat

	var hello helloData

	if err := json.Unmarshal(msg.D, &hello); err == nil && hello.HeartbeatInterval > 0 {
		interval = time.Duration(hello.HeartbeatInterval) * time.Millisecond
	}

	identify := identifyData{Token: g.cfg.Token, Intents: g.cfg.Intents}
	if err := g.write(ctx, conn, payload{Op: opIdentify}, identify); err != nil {
		return 0, fmt.Errorf("send identify: %w", err)
	}

	return interval, nil
}

func (g *Gateway) heartbeatLoop(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	defer worker.RecoverPanic(&g.logger, "gateway heartbeat")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seq := g.seq.Load()
			if err := g.write(ctx, conn, payload{Op: opHeartbeat}, seq); err != nil {
				g.logger.Warn().Err(err).Msg("heartbeat failed")

				return
			}
		}
	}
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		msg, err := g.read(ctx, conn)
		if err != nil {
			return fmt.Errorf("read gateway frame: %w", err)
		}

		switch msg.Op {
		case opDispatch:
			if msg.S > 0 {
				g.seq.Store(msg.S)
			}

			g.dispatch(ctx, msg.T, msg.D)
		case opHeartbeat:
			if err := g.write(ctx, conn, payload{Op: opHeartbeat}, g.seq.Load()); err != nil {
				return fmt.Errorf("answer heartbeat request: %w", err)
			}
		case opHeartbeatACK:
		default:
			g.logger.Debug().Int("op", msg.Op).Msg("unhandled gateway opcode")
		}
	}
}

// dispatch hands the event to the handler on its own goroutine so a slow
// or panicking handler cannot stall the read loop.
func (g *Gateway) dispatch(ctx context.Context, event string, data json.RawMessage) {
	if g.cfg.OnEvent == nil || event == "" {
		return
	}

	go func() {
		defer worker.RecoverPanic(&g.logger, "gateway event "+event)

		g.cfg.OnEvent(ctx, event, data)
	}()
}

func (g *Gateway) read(ctx context.Context, conn *websocket.Conn) (*payload, error) {
	kind, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	if kind != websocket.MessageText {
		return nil, errors.New("unexpected binary frame")
	}

	var msg payload

	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode gateway payload: %w", err)
	}

	return &msg, nil
}

func (g *Gateway) write(ctx context.Context, conn *websocket.Conn, msg payload, data any) error {
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode gateway payload: %w", err)
		}

		msg.D = encoded
	}

	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode gateway frame: %w", err)
	}

	return conn.Write(ctx, websocket.MessageText, encoded)
}
