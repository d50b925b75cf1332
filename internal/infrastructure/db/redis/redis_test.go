package redis

import "testing"

func TestConfig_Options_Defaults(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()

	if opts.Addr != "localhost:6379" {
		t.Fatalf("addr = %q", opts.Addr)
	}
	if opts.PoolSize != defaultPoolSize {
		t.Fatalf("expected default pool size %d, got %d", defaultPoolSize, opts.PoolSize)
	}
	if opts.DialTimeout != dialTimeout {
		t.Fatalf("expected dial timeout %v, got %v", dialTimeout, opts.DialTimeout)
	}
}

func TestConfig_Options_Explicit(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "hunter2", DB: 3, PoolSize: 25}.options()

	if opts.Password != "hunter2" || opts.DB != 3 {
		t.Fatalf("credentials not carried: %+v", opts)
	}
	if opts.PoolSize != 25 {
		t.Fatalf("explicit pool size overridden: %d", opts.PoolSize)
	}
}
