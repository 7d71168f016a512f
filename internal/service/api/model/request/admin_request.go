// Package request 관리 화면 폼과 AJAX 요청 본문을 정의합니다.
package request

// ModalRequest 편집기 툴바 버튼이 블록 입력 모달을 요청할 때 보내는 값
type ModalRequest struct {
	Nonce      string `form:"nonce" validate:"required" korean:"보안 토큰"`
	EditorType string `form:"editor_type" validate:"required,oneof=tinymce quicktags" korean:"편집기 종류"`
	Shortcode  string `form:"shortcode" validate:"required,max=64" korean:"블록 이름"`
}

// PostRequest 새 게시물 화면의 발행 요청
type PostRequest struct {
	Nonce    string `form:"_wpnonce" validate:"required" korean:"보안 토큰"`
	PostID   int64  `form:"post_ID"`
	PostType string `form:"post_type" validate:"required" korean:"게시물 유형"`
	Title    string `form:"post_title" validate:"required,max=200" korean:"제목"`
	Content  string `form:"content"`
}

// SetupRequest 설정 마법사 폼 선택 단계의 제출 값
type SetupRequest struct {
	Nonce  string `form:"_wpnonce" validate:"required" korean:"보안 토큰"`
	FormID string `form:"default_form_posts" validate:"required,numeric" korean:"폼"`
}
