package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip runtime.Callers, captureStack, 공개 생성 함수(New/Wrap 등)를 건너뛰어
// 에러를 생성한 호출자의 위치가 0번째 프레임이 되도록 합니다.
const defaultCallerSkip = 3

// maxStackFrames 수집할 최대 프레임 수
const maxStackFrames = 5

// StackFrame 함수 호출 스택의 한 프레임입니다.
type StackFrame struct {
	File     string // 파일 이름
	Line     int    // 줄 번호
	Function string // 함수 이름
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, n)
	callersFrames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
