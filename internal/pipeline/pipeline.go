// Package pipeline is the per-device signal path: it feeds transport events
// through the registry, orientation converter, calibration, gesture strategy,
// key-edge emitter and pose lock controller.
//
// A Pipeline is not safe for concurrent use. Transports hand their events to
// a single owner (the TUI update loop or the headless loop) which calls into
// the pipeline one message at a time.
package pipeline

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"armkeys.klederson.com/internal/device"
	"armkeys.klederson.com/internal/gesture"
	"armkeys.klederson.com/internal/keys"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
	"armkeys.klederson.com/internal/transport"
)

// Pipeline owns the registry and drives every per-device stage.
type Pipeline struct {
	registry   *device.Registry
	profile    gesture.Profile
	calibrator orientation.Calibrator
	emitter    *keys.Emitter
	lock       *pose.Controller
	log        *logging.Logger
}

// New wires a pipeline. The registry must hand out keysets of profile.
func New(
	registry *device.Registry,
	profile gesture.Profile,
	calibrator orientation.Calibrator,
	emitter *keys.Emitter,
	lock *pose.Controller,
	log *logging.Logger,
) *Pipeline {
	return &Pipeline{
		registry:   registry,
		profile:    profile,
		calibrator: calibrator,
		emitter:    emitter,
		lock:       lock,
		log:        log,
	}
}

// Registry exposes the device registry for read-only views.
func (p *Pipeline) Registry() *device.Registry {
	return p.registry
}

// Profile returns the active gesture profile.
func (p *Pipeline) Profile() gesture.Profile {
	return p.profile
}

// HandlePair registers h and stores its firmware and directive link. Pairing
// a known handle again keeps its id and replaces the link.
func (p *Pipeline) HandlePair(h device.Handle, firmware string, link pose.Link) (int, error) {
	id, err := p.registry.Register(h)
	if err != nil {
		return device.NotFound, err
	}
	s := p.registry.State(id)
	if firmware != "" {
		s.Firmware = firmware
	}
	s.Link = link

	p.log.Info("paired with armband", "device", id, "address", h, "keyset", s.Keyset, "firmware", s.Firmware)
	return id, nil
}

// HandleConnect marks h connected.
func (p *Pipeline) HandleConnect(h device.Handle, firmware string) error {
	s, err := p.registry.Lookup(h)
	if err != nil {
		return err
	}
	s.Connected = true
	if firmware != "" {
		s.Firmware = firmware
	}
	p.log.Info("armband connected", "device", s.ID, "firmware", s.Firmware)
	return nil
}

// HandleDisconnect marks h disconnected. Its slot, keyset and baseline stay.
func (p *Pipeline) HandleDisconnect(h device.Handle) error {
	s, err := p.registry.Lookup(h)
	if err != nil {
		return err
	}
	s.Connected = false
	p.log.Info("armband disconnected", "device", s.ID)
	return nil
}

// HandleOrientation converts q into buckets, stores them as the device's
// current orientation and feeds the calibrator.
func (p *Pipeline) HandleOrientation(h device.Handle, q orientation.Quaternion) error {
	s, err := p.registry.Lookup(h)
	if err != nil {
		return err
	}

	b, err := orientation.Convert(q)
	if err != nil {
		return fmt.Errorf("pipeline: device %d: %w", s.ID, err)
	}
	s.Current = b
	s.Samples++

	if s.Calibration.Calibrated {
		return nil
	}
	p.calibrator.Observe(&s.Calibration, b)
	if s.Calibration.Calibrated {
		base := s.Calibration.Baseline
		p.log.Info("armband calibrated",
			"device", s.ID,
			"calibrator", p.calibrator.Name(),
			"roll", base.Roll,
			"pitch", base.Pitch,
			"yaw", base.Yaw,
		)
	}
	return nil
}

// HandlePose records kind and sends the matching lock directives. The pose
// is stored before any directive goes out.
func (p *Pipeline) HandlePose(h device.Handle, kind pose.Kind) error {
	s, err := p.registry.Lookup(h)
	if err != nil {
		return err
	}
	s.Pose = kind

	lock, err := p.lock.Apply(s.Link, kind)
	s.Lock = lock
	if err != nil {
		return fmt.Errorf("pipeline: device %d: %w", s.ID, err)
	}
	p.log.Debug("pose", "device", s.ID, "pose", kind, "lock", lock)
	return nil
}

// Dispatch routes a transport message to its handler and logs any failure.
// Messages that are not transport events are ignored. The returned error is
// the one that was logged, for display.
func (p *Pipeline) Dispatch(msg tea.Msg) error {
	var err error
	switch msg := msg.(type) {
	case transport.PairedMsg:
		_, err = p.HandlePair(msg.Handle, msg.Firmware, msg.Link)
	case transport.ConnectedMsg:
		err = p.HandleConnect(msg.Handle, msg.Firmware)
	case transport.DisconnectedMsg:
		err = p.HandleDisconnect(msg.Handle)
	case transport.OrientationMsg:
		err = p.HandleOrientation(msg.Handle, msg.Quat)
	case transport.PoseMsg:
		err = p.HandlePose(msg.Handle, msg.Pose)
	case transport.ErrorMsg:
		err = msg.Err
	default:
		return nil
	}
	if err != nil {
		p.logError(err)
	}
	return err
}

func (p *Pipeline) logError(err error) {
	var (
		unknown *device.UnknownDeviceError
		tooMany *device.TooManyDevicesError
	)
	switch {
	case errors.As(err, &tooMany):
		p.log.Error("armband rejected", "address", tooMany.Handle, "limit", tooMany.Limit)
	case errors.As(err, &unknown):
		p.log.Warn("dropping event from unknown armband", "address", unknown.Handle)
	default:
		p.log.Warn("event failed", "error", err)
	}
}

// Report is the outcome of one tick for one device.
type Report struct {
	ID         int
	Handle     device.Handle
	Firmware   string
	Connected  bool
	Keyset     gesture.Keyset
	Current    orientation.Buckets
	Baseline   orientation.Buckets
	Calibrated bool
	Samples    uint64
	Pose       pose.Kind
	Lock       pose.LockState

	// Symbol is the strategy's output, gesture.None while uncalibrated.
	Symbol rune
	// Pressed is set when Symbol produced a keystroke this tick.
	Pressed bool
}

// Tick runs the gesture strategy for every calibrated device and presses a
// key for each symbol that changed. It returns one report per registered
// device in id order.
func (p *Pipeline) Tick() []Report {
	states := p.registry.States()
	reports := make([]Report, 0, len(states))

	for _, s := range states {
		r := report(s)
		if s.Calibration.Calibrated {
			r.Symbol = p.profile.Strategy(s.Input())

			pressed, err := p.emitter.Emit(&s.Edge, r.Symbol)
			if err != nil {
				p.log.Warn("key press failed", "device", s.ID, "error", err)
			}
			r.Pressed = pressed
		}

		p.log.Debug("tick",
			"device", s.ID,
			"roll", s.Current.Roll,
			"pitch", s.Current.Pitch,
			"yaw", s.Current.Yaw,
			"symbol", symbolString(r.Symbol),
			"pressed", r.Pressed,
		)
		reports = append(reports, r)
	}
	return reports
}

// Snapshot reports every registered device without running the strategy or
// pressing keys. Symbol holds the last emitted symbol.
func (p *Pipeline) Snapshot() []Report {
	states := p.registry.States()
	reports := make([]Report, 0, len(states))
	for _, s := range states {
		r := report(s)
		r.Symbol = s.Edge.Previous
		reports = append(reports, r)
	}
	return reports
}

func report(s *device.State) Report {
	return Report{
		ID:         s.ID,
		Handle:     s.Handle,
		Firmware:   s.Firmware,
		Connected:  s.Connected,
		Keyset:     s.Keyset,
		Current:    s.Current,
		Baseline:   s.Calibration.Baseline,
		Calibrated: s.Calibration.Calibrated,
		Samples:    s.Samples,
		Pose:       s.Pose,
		Lock:       s.Lock,
	}
}

func symbolString(r rune) string {
	if r == gesture.None {
		return ""
	}
	return string(r)
}
