package log

// silentFormatter 아무 것도 하지 않는 포맷터입니다.
// logrus는 출력이 io.Discard여도 포맷팅을 수행하므로, 실제 포맷팅은 hook에 맡기고 기본 포맷터는 비워 둡니다.
type silentFormatter struct{}

func (silentFormatter) Format(*Entry) ([]byte, error) {
	return nil, nil
}
