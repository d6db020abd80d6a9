package redis

import (
	"testing"
	"time"
)

func TestUsernameCache_Key(t *testing.T) {
	if got := key("64b7f0c2a1"); got != "username:64b7f0c2a1" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestNewUsernameCache_DefaultTTL(t *testing.T) {
	if c := NewUsernameCache(nil, 0); c.ttl != defaultUsernameTTL {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
	if c := NewUsernameCache(nil, time.Minute); c.ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", c.ttl)
	}
}

func TestConfig_OptionsDefaults(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("connection fields not carried: %+v", opts)
	}
	if opts.DialTimeout != defaultPingTimeout {
		t.Fatalf("expected dial timeout %s, got %s", defaultPingTimeout, opts.DialTimeout)
	}
	if opts.ReadTimeout != defaultOpTimeout || opts.WriteTimeout != defaultOpTimeout {
		t.Fatalf("expected op timeouts %s, got %s/%s", defaultOpTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
}

func TestConfig_OptionsOverrides(t *testing.T) {
	opts := Config{PingTimeout: time.Second, OpTimeout: time.Millisecond}.options()
	if opts.DialTimeout != time.Second || opts.ReadTimeout != time.Millisecond {
		t.Fatalf("overrides ignored: %+v", opts)
	}
}
