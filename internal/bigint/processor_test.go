package bigint

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint/mocks"
)

// interruptingConfig polls the platform every 1000 work units.
func interruptingConfig() Config {
	cfg := smallConfig()
	cfg.WorkEstimateThreshold = 1000
	return cfg
}

// expectInterruptOnSecondPoll programs the platform to allow one poll and
// interrupt on the next. An interrupted processor must not poll again, so
// any third call fails the test.
func expectInterruptOnSecondPoll(platform *mocks.MockPlatform) {
	gomock.InOrder(
		platform.EXPECT().InterruptRequested().Return(false).Times(1),
		platform.EXPECT().InterruptRequested().Return(true).Times(1),
	)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ToomThreshold = 2
	expectContractViolation(t, func() { New(noInterrupt{}, WithConfig(cfg)) })
	expectContractViolation(t, func() { New(nil) })
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"small", func(c *Config) { *c = smallConfig() }, ""},
		{"karatsuba too small", func(c *Config) { c.KaratsubaThreshold = 3 }, "karatsuba threshold"},
		{"toom below karatsuba", func(c *Config) { c.ToomThreshold = c.KaratsubaThreshold - 1 }, "toom threshold"},
		{"fft below toom", func(c *Config) { c.FFTThreshold = 100 }, "fft threshold"},
		{"barrett below burnikel", func(c *Config) { c.BarrettThreshold = 10 }, "barrett threshold"},
		{"barrett below newton", func(c *Config) {
			c.BurnikelThreshold = 4
			c.NewtonInversionThreshold = 20
			c.BarrettThreshold = 10
		}, "newton inversion threshold"},
		{"to-string", func(c *Config) { c.ToStringFastThreshold = 1 }, "to-string"},
		{"from-string", func(c *Config) { c.FromStringLargeThreshold = 0 }, "from-string"},
		{"work estimate", func(c *Config) { c.WorkEstimateThreshold = 0 }, "work estimate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWorkEstimatePollsAtThreshold(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	platform := mocks.NewMockPlatform(ctrl)
	platform.EXPECT().InterruptRequested().Return(false).Times(3)

	p := New(platform, WithConfig(interruptingConfig()))
	p.addWorkEstimate(999)
	if p.Polls() != 0 {
		t.Fatalf("polled before the threshold")
	}
	p.addWorkEstimate(1)
	p.addWorkEstimate(2500)
	p.addWorkEstimate(1000)
	if p.Polls() != 3 {
		t.Errorf("Polls() = %d, want 3", p.Polls())
	}
	if p.Status() != StatusOK {
		t.Errorf("Status() = %s, want ok", p.Status())
	}
}

func TestInterruptIsStickyUntilCleared(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	platform := mocks.NewMockPlatform(ctrl)
	expectInterruptOnSecondPoll(platform)

	var logs bytes.Buffer
	p := New(platform, WithConfig(interruptingConfig()), WithLogger(zerolog.New(&logs)))
	for i := 0; i < 10; i++ {
		p.addWorkEstimate(1000)
	}
	if !p.shouldTerminate() {
		t.Fatal("processor did not record the interrupt")
	}
	if p.Polls() != 2 {
		t.Errorf("Polls() = %d, want 2", p.Polls())
	}
	if !strings.Contains(logs.String(), "interrupt requested") {
		t.Errorf("interrupt was not logged: %q", logs.String())
	}
	if got := p.GetAndClearStatus(); got != StatusInterrupted {
		t.Errorf("GetAndClearStatus() = %s, want interrupted", got)
	}
	if got := p.GetAndClearStatus(); got != StatusOK {
		t.Errorf("second GetAndClearStatus() = %s, want ok", got)
	}
}

func TestOperationsStopOnInterrupt(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(90))
	x := randDigits(rng, 600)
	y := randDigits(rng, 300)

	tests := []struct {
		name string
		run  func(p *Processor)
	}{
		{"schoolbook", func(p *Processor) { p.MultiplySchoolbook(make(RWDigits, 900), x, y) }},
		{"karatsuba", func(p *Processor) { p.MultiplyKaratsuba(make(RWDigits, 900), x, y) }},
		{"toom", func(p *Processor) { p.MultiplyToomCook(make(RWDigits, 900), x, y) }},
		{"fft", func(p *Processor) { p.MultiplyFFT(make(RWDigits, 900), x, y) }},
		{"divide schoolbook", func(p *Processor) {
			p.DivideSchoolbook(make(RWDigits, 301), make(RWDigits, 300), x, y)
		}},
		{"divide burnikel", func(p *Processor) {
			p.DivideBurnikelZiegler(make(RWDigits, 301), make(RWDigits, 300), x, y)
		}},
		{"divide barrett", func(p *Processor) {
			p.DivideBarrett(make(RWDigits, 301), make(RWDigits, 300), x, y)
		}},
		{"to string", func(p *Processor) {
			out := make([]byte, ToStringResultLength(x, 10, false))
			if n := p.ToString(out, x, 10, false); n != 0 {
				t.Errorf("interrupted ToString returned %d bytes", n)
			}
		}},
		{"from string", func(p *Processor) {
			acc := NewFromStringAccumulator(1000)
			acc.Parse(strings.Repeat("7", 12000), 10)
			p.FromString(make(RWDigits, acc.ResultLength()), acc)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			platform := mocks.NewMockPlatform(ctrl)
			expectInterruptOnSecondPoll(platform)

			p := New(platform, WithConfig(interruptingConfig()))
			tt.run(p)
			if p.Status() != StatusInterrupted {
				t.Fatalf("Status() = %s after %d polls, want interrupted", p.Status(), p.Polls())
			}
		})
	}
}

func TestStatusStrings(t *testing.T) {
	t.Parallel()
	if StatusOK.String() != "ok" || StatusInterrupted.String() != "interrupted" || Status(9).String() != "unknown" {
		t.Error("unexpected Status names")
	}
	if AccumulatorOK.String() != "ok" || ResultMaxSizeExceeded.String() != "max size exceeded" {
		t.Error("unexpected AccumulatorResult names")
	}
}
