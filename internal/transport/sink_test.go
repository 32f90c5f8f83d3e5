package transport

import (
	"testing"
	"time"
)

func TestChanSinkDelivers(t *testing.T) {
	sink := NewChanSink(2)
	sink.Send(ErrorMsg{})
	sink.Send(PoseMsg{Handle: "a"})

	if _, ok := (<-sink.C).(ErrorMsg); !ok {
		t.Error("first message should be ErrorMsg")
	}
	if msg, ok := (<-sink.C).(PoseMsg); !ok || msg.Handle != "a" {
		t.Errorf("second message = %#v, want PoseMsg for a", msg)
	}
}

func TestChanSinkCloseReleasesBlockedSender(t *testing.T) {
	sink := NewChanSink(1)
	sink.Send(ErrorMsg{})

	returned := make(chan struct{})
	go func() {
		sink.Send(ErrorMsg{}) // buffer full, nobody reading
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("Send returned while the buffer was full and the sink open")
	case <-time.After(20 * time.Millisecond):
	}

	sink.Close()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Send still blocked after Close")
	}

	// Sends after Close never block; Close is idempotent.
	sink.Send(ErrorMsg{})
	sink.Close()
}
