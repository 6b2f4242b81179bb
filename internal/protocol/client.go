// Package protocol implements the client side of the Gothello daemon's line
// protocol: every message is a three-digit code followed by free text, one
// message per CRLF-terminated line.
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gothello/internal/board"
)

const (
	// Version is the client protocol version announced to the server.
	Version = "0.9.1"
	// BasePort is the TCP port of server number 0.
	BasePort = 29068
)

var (
	ErrGameOver     = errors.New("protocol: game is over")
	ErrDisconnected = errors.New("protocol: disconnected")
	ErrIllegalMove  = errors.New("protocol: illegal move")
	ErrTerminated   = errors.New("protocol: game terminated early")
	ErrBadMessage   = errors.New("protocol: invalid message code")
)

// ProtocolError reports a server message that makes no sense at this point
// of the conversation.
type ProtocolError struct {
	Code   int
	Text   string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: %s: %03d %s", e.Reason, e.Code, e.Text)
}

// Options configures Dial.
type Options struct {
	Side   board.Color
	Host   string
	Server int // added to BasePort

	Attempts uint          // dial attempts, 0 means 1
	Delay    time.Duration // initial back-off between attempts
}

// Addr returns the host:port the options point at.
func (o Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(BasePort+o.Server))
}

// Client is one seated player in one game. It is not safe for concurrent use.
type Client struct {
	conn net.Conn
	r    *bufio.Reader

	side   board.Color
	serial int

	whiteControl time.Duration
	blackControl time.Duration
	timed        bool
	myTime       time.Duration
	oppTime      time.Duration

	winner board.Color
}

// Dial connects to the server, announces our side and waits until the
// opponent is seated.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	if opts.Side != board.Black && opts.Side != board.White {
		return nil, fmt.Errorf("protocol: cannot play side %s", opts.Side)
	}
	attempts := max(opts.Attempts, 1)
	delay := opts.Delay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}

	var d net.Dialer
	conn, err := retry.DoWithData(
		func() (net.Conn, error) {
			return d.DialContext(ctx, "tcp", opts.Addr())
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Warn().Err(err).Uint("n", n).Str("addr", opts.Addr()).
				Msg("dial-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("protocol: dial %s: %w", opts.Addr(), err)
	}

	c := &Client{
		conn:   conn,
		r:      bufio.NewReader(conn),
		side:   opts.Side,
		serial: 1,
	}
	if err := c.handshake(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	log.Info().Str("addr", opts.Addr()).Str("side", c.side.String()).
		Bool("timed", c.timed).Msg("seated")
	return c, nil
}

func (c *Client) handshake(ctx context.Context) error {
	defer c.watch(ctx)()

	code, text, err := c.readMsg(ctx)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ProtocolError{code, text, "illegal greeting"}
	}

	if err := c.send(ctx, fmt.Sprintf("%s player %s", Version, c.side)); err != nil {
		return err
	}
	code, text, err = c.readMsg(ctx)
	if err != nil {
		return err
	}
	switch code {
	case 100:
	case 101:
		if err := c.setTimeControls(code, text); err != nil {
			return err
		}
	default:
		return &ProtocolError{code, text, "side failure"}
	}

	code, text, err = c.readMsg(ctx)
	if err != nil {
		return err
	}
	if (c.side == board.White && code != 351) || (c.side == board.Black && code != 352) {
		return &ProtocolError{code, text, "got wrong side"}
	}
	return nil
}

// setTimeControls reads "<white> [<black>]" in seconds. A single value
// applies to both sides.
func (c *Client) setTimeControls(code int, text string) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return &ProtocolError{code, text, "missing time controls"}
	}
	var controls []time.Duration
	for _, w := range words[:min(len(words), 2)] {
		s, err := strconv.Atoi(w)
		if err != nil {
			return &ProtocolError{code, text, "bad time control"}
		}
		controls = append(controls, time.Duration(s)*time.Second)
	}
	c.whiteControl = controls[0]
	c.blackControl = controls[len(controls)-1]
	c.timed = true
	if c.side == board.White {
		c.myTime, c.oppTime = c.whiteControl, c.blackControl
	} else {
		c.myTime, c.oppTime = c.blackControl, c.whiteControl
	}
	return nil
}

// SendMove sends our move and reads the server's verdict. It returns false
// once the game is over, in which case the connection is closed and Winner
// is set.
func (c *Client) SendMove(ctx context.Context, m board.Move) (bool, error) {
	if c.winner != board.Empty {
		return false, ErrGameOver
	}
	defer c.watch(ctx)()

	line := fmt.Sprintf("%d %s", c.serial, m)
	if c.side == board.White {
		line = fmt.Sprintf("%d ... %s", c.serial, m)
	}
	if err := c.send(ctx, line); err != nil {
		return false, err
	}

	code, text, err := c.readMsg(ctx)
	if err != nil {
		return false, err
	}
	switch code {
	case 201:
		c.winner = c.side
	case 202:
		c.winner = c.side.Other()
	case 203:
		return false, ErrDisconnected
	}
	if c.winner != board.Empty {
		log.Debug().Int("code", code).Str("winner", c.winner.String()).Msg("game-over-on-send")
		c.Close()
		return false, nil
	}

	switch code {
	case 200:
	case 207:
		t, err := parseSeconds(text)
		if err != nil {
			return false, &ProtocolError{code, text, "bad clock"}
		}
		c.myTime = t
	case 291:
		return false, ErrIllegalMove
	default:
		return false, &ProtocolError{code, text, "unexpected move result code"}
	}

	code, text, err = c.readMsg(ctx)
	if err != nil {
		return false, err
	}
	if code < 311 || code > 318 {
		return false, &ProtocolError{code, text, "unexpected move status code"}
	}
	return true, nil
}

// moveStatus describes one opponent-move message. An Empty mover means the
// code can carry a move from either side.
type moveStatus struct {
	mover      board.Color
	timed      bool
	winner     board.Color
	terminated bool
}

var moveStatuses = map[int]moveStatus{
	311: {mover: board.Black},
	313: {mover: board.Black, timed: true},
	315: {mover: board.Black},
	317: {mover: board.Black, timed: true},
	321: {mover: board.Black, winner: board.Black},
	322: {mover: board.Black, winner: board.White},
	325: {mover: board.Black, terminated: true},

	312: {mover: board.White},
	314: {mover: board.White, timed: true},
	316: {mover: board.White},
	318: {mover: board.White, timed: true},
	323: {mover: board.White, winner: board.White},
	324: {mover: board.White, winner: board.Black},
	326: {mover: board.White, terminated: true},

	361: {winner: board.Black},
	362: {winner: board.White},
}

// ReceiveMove waits for the opponent's move. The boolean is false when the
// move ended the game; the move itself is still returned.
func (c *Client) ReceiveMove(ctx context.Context) (board.Move, bool, error) {
	if c.winner != board.Empty {
		return board.NoMove, false, ErrGameOver
	}
	defer c.watch(ctx)()

	code, text, err := c.readMsg(ctx)
	if err != nil {
		return board.NoMove, false, err
	}
	st, ok := moveStatuses[code]
	if !ok {
		return board.NoMove, false, &ProtocolError{code, text, "unknown move status code"}
	}
	if st.mover == board.Empty {
		st.mover = c.side.Other()
	}
	if st.mover != c.side.Other() {
		return board.NoMove, false, &ProtocolError{code, text, "move received from wrong side"}
	}

	// Black moves read "<serial> <move> [time]", white moves
	// "<serial> ... <move> [time]".
	words := strings.Fields(text)
	pos := 1
	if st.mover == board.White {
		pos = 2
	}
	need := pos + 1
	if st.timed {
		need++
	}
	if len(words) < need {
		return board.NoMove, false, &ProtocolError{code, text, "short move message"}
	}
	serial, err := strconv.Atoi(words[0])
	if err != nil {
		return board.NoMove, false, &ProtocolError{code, text, "bad serial"}
	}
	m, err := board.ParseMove(words[pos])
	if err != nil {
		return board.NoMove, false, &ProtocolError{code, text, "bad move"}
	}
	if st.timed {
		t, err := parseSeconds(words[pos+1])
		if err != nil {
			return board.NoMove, false, &ProtocolError{code, text, "bad clock"}
		}
		c.oppTime = t
	}

	c.serial = serial
	if c.side == board.Black {
		c.serial++
	}

	switch {
	case st.terminated:
		return m, false, ErrTerminated
	case st.winner != board.Empty:
		c.winner = st.winner
		log.Debug().Int("code", code).Str("winner", c.winner.String()).Msg("game-over-on-receive")
		c.Close()
		return m, false, nil
	}
	return m, true, nil
}

// Winner returns the winning side, or board.Empty while the game is on.
func (c *Client) Winner() board.Color { return c.winner }

// Side returns the side we play.
func (c *Client) Side() board.Color { return c.side }

// Serial returns the current move number.
func (c *Client) Serial() int { return c.serial }

// MyTime returns our remaining clock. ok is false in untimed games.
func (c *Client) MyTime() (t time.Duration, ok bool) { return c.myTime, c.timed }

// OppTime returns the opponent's remaining clock. ok is false in untimed games.
func (c *Client) OppTime() (t time.Duration, ok bool) { return c.oppTime, c.timed }

// Close disconnects from the server. It is safe to call more than once.
func (c *Client) Close() error {
	err := c.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// watch applies ctx's deadline to the connection and unblocks pending I/O
// when ctx is cancelled. The returned func stops watching.
func (c *Client) watch(ctx context.Context) func() {
	deadline, _ := ctx.Deadline()
	c.conn.SetDeadline(deadline)
	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Unix(1, 0))
	})
	return func() { stop() }
}

func (c *Client) send(ctx context.Context, line string) error {
	log.Trace().Str("line", line).Msg("send")
	if _, err := io.WriteString(c.conn, line+"\r\n"); err != nil {
		return c.ioError(ctx, err)
	}
	return nil
}

// readMsg returns the next non-blank message split into its code and text.
func (c *Client) readMsg(ctx context.Context) (int, string, error) {
	for {
		line, err := c.r.ReadString('\n')
		words := strings.Fields(line)
		if len(words) == 0 {
			if err != nil {
				return 0, "", c.ioError(ctx, err)
			}
			continue
		}
		log.Trace().Str("line", strings.TrimSpace(line)).Msg("recv")
		code, ok := parseCode(words[0])
		if !ok {
			return 0, "", fmt.Errorf("%w: %q", ErrBadMessage, strings.TrimSpace(line))
		}
		return code, strings.Join(words[1:], " "), nil
	}
}

func (c *Client) ioError(ctx context.Context, err error) error {
	// Every deadline on the connection comes from ctx.
	if ctx.Err() != nil || errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
		return fmt.Errorf("protocol: %w", ctx.Err())
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return fmt.Errorf("protocol: %w", err)
}

func parseCode(s string) (int, bool) {
	if len(s) != 3 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	code, _ := strconv.Atoi(s)
	return code, true
}

func parseSeconds(text string) (time.Duration, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, strconv.ErrSyntax
	}
	s, err := strconv.Atoi(words[0])
	if err != nil {
		return 0, err
	}
	return time.Duration(s) * time.Second, nil
}
