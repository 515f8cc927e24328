package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Build hooks
	b := NoopBuildHooks{}
	b.OnThemeResolve(ctx, "palette:ocean", []string{"primary", "secondary"})
	b.OnBuildStart(ctx, 100)
	b.OnBuildComplete(ctx, 100, time.Second, nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "spec")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Reset() should restore NoopBuildHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBuildHooks{}
	SetBuildHooks(custom)
	SetBuildHooks(nil)
	if Build() != custom {
		t.Error("SetBuildHooks(nil) should not replace registered hooks")
	}

	Reset()
}

func TestHooksRecordEvents(t *testing.T) {
	Reset()
	defer Reset()

	hooks := &testCacheHooks{}
	SetCacheHooks(hooks)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "spec")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 42)

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("cache hooks recorded hits=%d misses=%d sets=%d, want 1/1/1",
			hooks.hits, hooks.misses, hooks.sets)
	}
}

// =============================================================================
// Test hook implementations
// =============================================================================

type testBuildHooks struct {
	builds int
}

func (h *testBuildHooks) OnThemeResolve(context.Context, string, []string) {}
func (h *testBuildHooks) OnBuildStart(context.Context, int)                {}
func (h *testBuildHooks) OnBuildComplete(context.Context, int, time.Duration, error) {
	h.builds++
}

type testRenderHooks struct {
	renders int
}

func (h *testRenderHooks) OnRenderStart(context.Context, []string) {}
func (h *testRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

type testCacheHooks struct {
	hits, misses, sets int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) {
	h.sets++
}
