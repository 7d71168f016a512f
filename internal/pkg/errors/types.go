package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 저장소, 파일, 네트워크 등 인프라 오류
	System

	// Unauthorized Kit API 자격증명 거부, 관리자 인증 실패 등
	Unauthorized

	// Forbidden 인증은 되었지만 필요한 권한(capability)이 없음
	Forbidden

	// InvalidInput 잘못된 입력값 (폼 제출값, nonce, AJAX 파라미터 등)
	InvalidInput

	// Conflict 이미 등록된 설정 키 등 상태 충돌
	Conflict

	// NotFound 게시물, 폼, 옵션 등을 찾을 수 없음
	NotFound

	// ExecutionFailed 외부 API 호출 등 작업 수행 실패
	ExecutionFailed

	// ParsingFailed JSON 응답 등 데이터 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 외부 서비스 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

// String fmt.Stringer 인터페이스를 구현합니다.
// 정의되지 않은 값은 "ErrorType(N)" 형식으로 출력합니다.
func (t ErrorType) String() string {
	if t >= 0 && int(t) < len(errorTypeNames) {
		return errorTypeNames[t]
	}
	return "ErrorType(" + strconv.Itoa(int(t)) + ")"
}
