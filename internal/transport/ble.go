package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"armkeys.klederson.com/internal/device"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/pose"
)

var (
	controlServiceUUID  = mustUUID(controlServiceID)
	firmwareCharUUID    = mustUUID(firmwareCharacteristic)
	commandCharUUID     = mustUUID(commandCharacteristicID)
	imuServiceUUID      = mustUUID(imuServiceID)
	imuDataCharUUID     = mustUUID(imuDataCharacteristicID)
	classifierSvcUUID   = mustUUID(classifierServiceID)
	classifierEventUUID = mustUUID(classifierEventCharID)
)

// serviceCharacteristics lists the characteristics used from each service.
var serviceCharacteristics = map[bluetooth.UUID][]bluetooth.UUID{
	controlServiceUUID: {firmwareCharUUID, commandCharUUID},
	imuServiceUUID:     {imuDataCharUUID},
	classifierSvcUUID:  {classifierEventUUID},
}

func mustUUID(id uint16) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(myoUUIDString(id))
	if err != nil {
		panic(err)
	}
	return u
}

// errScanTimeout ends scanning once the configured scan window closes.
var errScanTimeout = errors.New("transport: scan window closed")

// BLE discovers armbands over Bluetooth Low Energy, connects to them and
// streams their orientation and pose events.
type BLE struct {
	adapter     *bluetooth.Adapter
	log         *logging.Logger
	scanTimeout time.Duration
	limit       int

	sink   Sink
	cancel context.CancelFunc
	rescan chan struct{}

	mu          sync.Mutex
	seen        map[device.Handle]bool
	disconnects []func() error
}

// NewBLE creates a BLE transport on the default adapter. It stops scanning
// after scanTimeout (zero scans until stopped) or once limit armbands are
// connected.
func NewBLE(scanTimeout time.Duration, limit int, log *logging.Logger) *BLE {
	return &BLE{
		adapter:     bluetooth.DefaultAdapter,
		log:         log,
		scanTimeout: scanTimeout,
		limit:       limit,
		seen:        make(map[device.Handle]bool),
		rescan:      make(chan struct{}, 1),
	}
}

// Start enables the adapter and begins discovery in a goroutine.
func (t *BLE) Start(sink Sink) error {
	t.sink = sink

	t.adapter.SetConnectHandler(func(d bluetooth.Device, connected bool) {
		if !connected {
			t.lost(device.Handle(d.Address.String()))
		}
	})

	if err := t.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	go t.run(ctx)
	return nil
}

func (t *BLE) run(ctx context.Context) {
	for {
		t.discover(ctx)

		select {
		case <-ctx.Done():
			return
		case <-t.rescan:
			t.log.Info("armband lost, scanning to reconnect")
		}
	}
}

// discover scans and connects until every slot is filled, the scan window
// closes or ctx is done.
func (t *BLE) discover(ctx context.Context) {
	var deadline <-chan time.Time
	if t.scanTimeout > 0 {
		timer := time.NewTimer(t.scanTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	t.log.Info("scanning for armbands", "limit", t.limit, "timeout", t.scanTimeout)
	for t.seenCount() < t.limit {
		result, err := t.scanNext(ctx, deadline)
		if err != nil {
			switch {
			case ctx.Err() != nil:
			case errors.Is(err, errScanTimeout):
				t.log.Info("scan finished", "armbands", t.seenCount())
			default:
				t.sink.Send(ErrorMsg{Err: fmt.Errorf("transport: scan: %w", err)})
			}
			return
		}

		if err := t.connect(ctx, result); err != nil {
			// Forget it so the next scan can retry.
			t.forget(device.Handle(result.Address.String()))
			t.log.Warn("armband connect failed", "address", result.Address.String(), "error", err)
			t.sink.Send(ErrorMsg{Err: err})
		}
	}
	t.log.Info("all armband slots connected, scan stopped")
}

// lost handles a dropped link: the armband is reported disconnected and
// forgotten so the next scan can find it again. Its pipeline slot stays.
func (t *BLE) lost(h device.Handle) {
	if !t.isSeen(h) {
		return
	}
	t.forget(h)
	t.sink.Send(DisconnectedMsg{Handle: h})

	select {
	case t.rescan <- struct{}{}:
	default:
	}
}

// scanNext scans until an armband not seen before shows up.
func (t *BLE) scanNext(ctx context.Context, deadline <-chan time.Time) (bluetooth.ScanResult, error) {
	var (
		mu    sync.Mutex
		found bluetooth.ScanResult
		ok    bool
		timed bool
	)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-deadline:
			mu.Lock()
			timed = true
			mu.Unlock()
		case <-done:
			return
		}
		_ = t.adapter.StopScan()
	}()

	err := t.adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
		if !r.HasServiceUUID(controlServiceUUID) || t.isSeen(device.Handle(r.Address.String())) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if ok {
			return
		}
		found, ok = r, true
		_ = a.StopScan()
	})

	mu.Lock()
	defer mu.Unlock()
	switch {
	case ok:
		return found, nil
	case err != nil:
		return bluetooth.ScanResult{}, err
	case timed:
		return bluetooth.ScanResult{}, errScanTimeout
	case ctx.Err() != nil:
		return bluetooth.ScanResult{}, ctx.Err()
	default:
		return bluetooth.ScanResult{}, errors.New("transport: scan stopped without a result")
	}
}

func (t *BLE) connect(ctx context.Context, result bluetooth.ScanResult) (err error) {
	handle := device.Handle(result.Address.String())
	t.markSeen(handle)

	dev, err := t.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("transport: connect %s: %w", handle, err)
	}
	defer func() {
		if err != nil {
			_ = dev.Disconnect()
			return
		}
		t.mu.Lock()
		t.disconnects = append(t.disconnects, dev.Disconnect)
		t.mu.Unlock()
	}()

	services, err := dev.DiscoverServices([]bluetooth.UUID{controlServiceUUID, imuServiceUUID, classifierSvcUUID})
	if err != nil {
		return fmt.Errorf("transport: discover services on %s: %w", handle, err)
	}

	chars := make(map[bluetooth.UUID]bluetooth.DeviceCharacteristic)
	for _, svc := range services {
		wanted, ok := serviceCharacteristics[svc.UUID()]
		if !ok {
			continue
		}
		found, err := svc.DiscoverCharacteristics(wanted)
		if err != nil {
			return fmt.Errorf("transport: discover characteristics on %s: %w", handle, err)
		}
		for _, c := range found {
			chars[c.UUID()] = c
		}
	}

	fwChar, okFw := chars[firmwareCharUUID]
	cmdChar, okCmd := chars[commandCharUUID]
	imuChar, okIMU := chars[imuDataCharUUID]
	clsChar, okCls := chars[classifierEventUUID]
	if !okFw || !okCmd || !okIMU || !okCls {
		return fmt.Errorf("%w: %s", ErrNotArmband, handle)
	}

	buf := make([]byte, 8)
	n, err := fwChar.Read(buf)
	if err != nil {
		return fmt.Errorf("transport: read firmware of %s: %w", handle, err)
	}
	firmware, err := decodeFirmware(buf[:n])
	if err != nil {
		return err
	}

	write := commandWriter(cmdChar)
	for _, cmd := range [][]byte{setModeCommand(), neverSleepCommand()} {
		if _, err := write(cmd); err != nil {
			return fmt.Errorf("transport: configure %s: %w", handle, err)
		}
	}

	link := newBLELink(ctx, handle, write, t.log)
	t.sink.Send(PairedMsg{Handle: handle, Firmware: firmware, Link: link})
	t.sink.Send(ConnectedMsg{Handle: handle, Firmware: firmware})

	err = imuChar.EnableNotifications(func(b []byte) {
		q, err := decodeIMU(b)
		if err != nil {
			t.log.Debug("dropping imu packet", "armband", handle, "error", err)
			return
		}
		t.sink.Send(OrientationMsg{Handle: handle, Quat: q})
	})
	if err != nil {
		return fmt.Errorf("transport: enable imu notifications on %s: %w", handle, err)
	}

	err = clsChar.EnableNotifications(func(b []byte) {
		kind, ok, err := decodeClassifier(b)
		if err != nil {
			t.log.Debug("dropping classifier event", "armband", handle, "error", err)
			return
		}
		if ok {
			t.sink.Send(PoseMsg{Handle: handle, Pose: kind})
		}
	})
	if err != nil {
		return fmt.Errorf("transport: enable classifier notifications on %s: %w", handle, err)
	}

	t.log.Info("armband streaming", "address", handle, "firmware", firmware)
	return nil
}

// Stop ends discovery and disconnects every armband.
func (t *BLE) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	_ = t.adapter.StopScan()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, disconnect := range t.disconnects {
		_ = disconnect()
	}
	t.disconnects = nil
}

func (t *BLE) markSeen(h device.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[h] = true
}

func (t *BLE) forget(h device.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.seen, h)
}

func (t *BLE) isSeen(h device.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen[h]
}

func (t *BLE) seenCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// commandWriter returns the write used for the command characteristic. The
// armband acknowledges commands through state changes, not ATT responses, and
// write-without-response is the one write every backend provides.
func commandWriter(c bluetooth.DeviceCharacteristic) func([]byte) (int, error) {
	return c.WriteWithoutResponse
}

const linkQueueSize = 8

// bleLink sends directives to one armband. Commands are queued and written
// from a goroutine so the pipeline never blocks on the radio.
type bleLink struct {
	handle device.Handle
	queue  chan []byte
}

func newBLELink(ctx context.Context, handle device.Handle, write func([]byte) (int, error), log *logging.Logger) *bleLink {
	l := &bleLink{handle: handle, queue: make(chan []byte, linkQueueSize)}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cmd := <-l.queue:
				if _, err := write(cmd); err != nil {
					log.Warn("armband command failed", "armband", handle, "command", fmt.Sprintf("0x%02x", cmd[0]), "error", err)
				}
			}
		}
	}()
	return l
}

func (l *bleLink) enqueue(cmd []byte) error {
	select {
	case l.queue <- cmd:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrLinkBusy, l.handle)
	}
}

func (l *bleLink) RequestUnlock(mode pose.UnlockMode) error {
	cmd, err := unlockCommand(mode)
	if err != nil {
		return err
	}
	return l.enqueue(cmd)
}

func (l *bleLink) NotifyUserAction() error {
	return l.enqueue(userActionCommand())
}
