package keys

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"armkeys.klederson.com/internal/logging"
)

// virtualKeyOffset is the distance from a lowercase ASCII letter to its
// Windows virtual key code ('q' → VK_Q = 0x51).
const virtualKeyOffset = 'a' - 'A'

// VirtualKey maps a lowercase letter to its Windows virtual key code.
func VirtualKey(symbol rune) (uint16, error) {
	if symbol < 'a' || symbol > 'z' {
		return 0, fmt.Errorf("%w: %q", ErrUnmappedSymbol, symbol)
	}
	return uint16(symbol - virtualKeyOffset), nil
}

// LogInjector logs key presses instead of injecting them.
type LogInjector struct {
	log *logging.Logger
}

// NewLogInjector creates a dry-run injector.
func NewLogInjector(log *logging.Logger) *LogInjector {
	return &LogInjector{log: log}
}

func (l *LogInjector) PressKey(symbol rune) error {
	vk, err := VirtualKey(symbol)
	if err != nil {
		return err
	}
	l.log.Info("key press (dry run)", "key", string(symbol), "vk", fmt.Sprintf("0x%02X", vk))
	return nil
}

// uinput needs a moment before the freshly created device accepts events.
const linuxSettleDelay = 2 * time.Second

// KeybdInjector injects key presses at the OS level.
type KeybdInjector struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

// NewKeybdInjector creates the OS keyboard. On Linux this needs write access
// to /dev/uinput.
func NewKeybdInjector() (*KeybdInjector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keys: create virtual keyboard: %w", err)
	}
	if runtime.GOOS == "linux" {
		time.Sleep(linuxSettleDelay)
	}
	return &KeybdInjector{kb: kb}, nil
}

func (k *KeybdInjector) PressKey(symbol rune) error {
	code, ok := letterCodes[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnmappedSymbol, symbol)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.kb.Clear()
	k.kb.SetKeys(code)
	return k.kb.Launching()
}

var letterCodes = map[rune]int{
	'a': keybd_event.VK_A, 'b': keybd_event.VK_B, 'c': keybd_event.VK_C, 'd': keybd_event.VK_D,
	'e': keybd_event.VK_E, 'f': keybd_event.VK_F, 'g': keybd_event.VK_G, 'h': keybd_event.VK_H,
	'i': keybd_event.VK_I, 'j': keybd_event.VK_J, 'k': keybd_event.VK_K, 'l': keybd_event.VK_L,
	'm': keybd_event.VK_M, 'n': keybd_event.VK_N, 'o': keybd_event.VK_O, 'p': keybd_event.VK_P,
	'q': keybd_event.VK_Q, 'r': keybd_event.VK_R, 's': keybd_event.VK_S, 't': keybd_event.VK_T,
	'u': keybd_event.VK_U, 'v': keybd_event.VK_V, 'w': keybd_event.VK_W, 'x': keybd_event.VK_X,
	'y': keybd_event.VK_Y, 'z': keybd_event.VK_Z,
}

// Recorder is an in-memory Injector that remembers every press.
type Recorder struct {
	mu      sync.Mutex
	Pressed []rune
	Err     error
}

func (r *Recorder) PressKey(symbol rune) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Pressed = append(r.Pressed, symbol)
	return nil
}

// Presses returns a copy of the recorded presses.
func (r *Recorder) Presses() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rune(nil), r.Pressed...)
}
