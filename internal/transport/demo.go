package transport

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/device"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
)

var demoPoses = []pose.Kind{
	pose.Rest, pose.Rest, pose.Fist, pose.WaveIn, pose.WaveOut, pose.FingersSpread, pose.DoubleTap, pose.Unknown,
}

type demoArmband struct {
	handle   device.Handle
	firmware string
	link     *demoLink

	// angular amplitudes (radians) and frequencies (rad/s) per axis
	rollAmp, pitchAmp, yawAmp    float64
	rollFreq, pitchFreq, yawFreq float64
}

// angles returns the armband orientation at t seconds. Every axis starts at
// zero so the first sample, which becomes the baseline, is level.
func (a *demoArmband) angles(t float64) orientation.Angles {
	return orientation.Angles{
		Roll:  a.rollAmp * math.Sin(a.rollFreq*t),
		Pitch: -a.pitchAmp * math.Sin(a.pitchFreq*t),
		Yaw:   a.yawAmp * math.Sin(a.yawFreq*t),
	}
}

// Demo generates synthetic armbands that sweep through every gesture, so
// the whole pipeline runs without hardware.
type Demo struct {
	log      *logging.Logger
	sink     Sink
	armbands []*demoArmband
	cancel   context.CancelFunc
}

// NewDemo creates a demo transport with n synthetic armbands.
func NewDemo(n int, log *logging.Logger) *Demo {
	armbands := make([]*demoArmband, n)
	for i := range armbands {
		handle := device.Handle(randomAddress())
		armbands[i] = &demoArmband{
			handle:    handle,
			firmware:  fmt.Sprintf("1.5.%d", 1970+i),
			link:      &demoLink{handle: handle, log: log},
			rollAmp:   70 * math.Pi / 180,
			pitchAmp:  60 * math.Pi / 180,
			yawAmp:    150 * math.Pi / 180,
			rollFreq:  0.6 + rand.Float64()*0.4,
			pitchFreq: 0.3 + rand.Float64()*0.3,
			yawFreq:   0.2 + rand.Float64()*0.2,
		}
	}
	return &Demo{log: log, armbands: armbands}
}

// Start pairs every demo armband and begins streaming samples. Nothing is
// sent before Start returns, so the sink may start consuming afterwards.
func (d *Demo) Start(sink Sink) error {
	d.sink = sink

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	go d.loop(ctx)
	return nil
}

func (d *Demo) loop(ctx context.Context) {
	for _, a := range d.armbands {
		d.sink.Send(PairedMsg{Handle: a.handle, Firmware: a.firmware, Link: a.link})
		d.sink.Send(ConnectedMsg{Handle: a.handle, Firmware: a.firmware})
	}

	samples := time.NewTicker(config.DemoSamplePeriod)
	defer samples.Stop()
	poses := time.NewTicker(config.DemoPosePeriod)
	defer poses.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-samples.C:
			t := now.Sub(start).Seconds()
			for _, a := range d.armbands {
				d.sink.Send(OrientationMsg{
					Handle: a.handle,
					Quat:   orientation.FromEuler(a.angles(t)),
				})
			}
		case <-poses.C:
			a := d.armbands[rand.Intn(len(d.armbands))]
			d.sink.Send(PoseMsg{Handle: a.handle, Pose: demoPoses[rand.Intn(len(demoPoses))]})
		}
	}
}

// Stop halts the demo streams.
func (d *Demo) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// demoLink accepts directives and logs them.
type demoLink struct {
	handle device.Handle
	log    *logging.Logger
}

func (l *demoLink) RequestUnlock(mode pose.UnlockMode) error {
	l.log.Debug("unlock", "armband", l.handle, "mode", mode)
	return nil
}

func (l *demoLink) NotifyUserAction() error {
	l.log.Debug("user action", "armband", l.handle)
	return nil
}

func randomAddress() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
