package pose

import (
	"errors"
	"reflect"
	"testing"
)

type fakeLink struct {
	calls     []string
	unlockErr error
}

func (f *fakeLink) RequestUnlock(mode UnlockMode) error {
	f.calls = append(f.calls, "unlock:"+mode.String())
	return f.unlockErr
}

func (f *fakeLink) NotifyUserAction() error {
	f.calls = append(f.calls, "notify")
	return nil
}

func TestController_Apply(t *testing.T) {
	tests := []struct {
		kind      Kind
		wantState LockState
		wantCalls []string
	}{
		{Unknown, TimedUnlocked, []string{"unlock:timed"}},
		{Rest, TimedUnlocked, []string{"unlock:timed"}},
		{Fist, HeldUnlocked, []string{"unlock:hold", "notify"}},
		{WaveIn, HeldUnlocked, []string{"unlock:hold", "notify"}},
		{WaveOut, HeldUnlocked, []string{"unlock:hold", "notify"}},
		{FingersSpread, HeldUnlocked, []string{"unlock:hold", "notify"}},
		{DoubleTap, HeldUnlocked, []string{"unlock:hold", "notify"}},
	}

	c := NewController()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			link := &fakeLink{}
			state, err := c.Apply(link, tt.kind)
			if err != nil {
				t.Fatalf("Apply() error: %v", err)
			}
			if state != tt.wantState {
				t.Errorf("state = %v, want %v", state, tt.wantState)
			}
			if !reflect.DeepEqual(link.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", link.calls, tt.wantCalls)
			}
		})
	}
}

func TestController_ApplyNilLink(t *testing.T) {
	state, err := NewController().Apply(nil, Fist)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if state != HeldUnlocked {
		t.Errorf("state = %v, want %v", state, HeldUnlocked)
	}
}

func TestController_ApplyLinkError(t *testing.T) {
	boom := errors.New("write failed")
	link := &fakeLink{unlockErr: boom}

	_, err := NewController().Apply(link, Fist)
	if !errors.Is(err, boom) {
		t.Fatalf("Apply() error = %v, want wrapping %v", err, boom)
	}
	if len(link.calls) != 1 {
		t.Errorf("calls = %v, want notify skipped after unlock failure", link.calls)
	}
}
