package configwatcher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"certquiz_backend/internal/config"
	"certquiz_backend/pkg/logger"

	"go.uber.org/zap"
)

func writeWatcherConfig(t *testing.T, path, port string) {
	t.Helper()
	content := fmt.Sprintf(`server:
  port: "%s"
  mode: test

jwt:
  secret: unit-test-secret-at-least-32-chars!!
  expire_hours: 1
`, port)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// 首次文件变更就必须触发重载，防抖不能卡死监听循环
func TestWatchConfigReloadsOnWrite(t *testing.T) {
	logger.Log = zap.NewNop()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeWatcherConfig(t, path, "8080")

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	reloaded := make(chan *config.Config, 1)
	go WatchConfig(path, cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			select {
			case reloaded <- c:
			default:
			}
		}
	})

	// 等 watcher 完成注册
	time.Sleep(200 * time.Millisecond)
	writeWatcherConfig(t, path, "9090")

	select {
	case newCfg := <-reloaded:
		if newCfg.Server.Port != "9090" {
			t.Errorf("expected reloaded port 9090, got %s", newCfg.Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never fired after the file was written")
	}

	// 第二次变更同样要触发，定时器必须可复用
	writeWatcherConfig(t, path, "9191")
	select {
	case newCfg := <-reloaded:
		if newCfg.Server.Port != "9191" {
			t.Errorf("expected reloaded port 9191, got %s", newCfg.Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second config reload never fired")
	}
}
