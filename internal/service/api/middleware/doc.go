// Package middleware 관리 화면 웹 서버용 Echo 미들웨어를 제공합니다.
//
//   - HTTPLogger: 요청/응답 로깅 (api_key, nonce 등 민감한 쿼리 파라미터 마스킹)
//   - BasicAuth, RequireCapability: 관리 화면 사용자 인증과 권한 확인
//   - RateLimiting: IP 단위 요청 제한
//   - PanicRecovery: 패닉 복구 및 로깅
//   - Logger: Echo 로거를 애플리케이션 로거(logrus)로 연결
package middleware
