// Package testutil 웹 서버와 애플리케이션 구성 요소를 띄우는 테스트 도우미를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FreePort 관리 화면 서버가 바인딩할 수 있는 빈 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer 서버가 port에서 연결을 받을 때까지 기다립니다.
func WaitForServer(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("localhost:%d", port)

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)

	for {
		if conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond); err == nil {
			return conn.Close()
		}

		select {
		case <-ticker.C:
		case <-deadline:
			return fmt.Errorf("관리 화면 서버가 %v 안에 시작되지 않았습니다 (%s)", timeout, addr)
		}
	}
}
