package editor

import (
	"encoding/json"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

type scriptBlock struct {
	Name             string `json:"name"`
	Title            string `json:"title"`
	ProgrammaticName string `json:"programmatic_name"`
	ShortcodeTag     string `json:"shortcode"`
}

type scriptSettings struct {
	AjaxURL string        `json:"ajax_url"`
	Nonce   string        `json:"nonce"`
	Blocks  []scriptBlock `json:"blocks"`
}

// ScriptSettings quicktags.js가 읽는 window.convertkit_quicktags 값을 JSON으로 만듭니다.
func ScriptSettings(blocks []Block, ajaxURL, nonce string) ([]byte, error) {
	s := scriptSettings{AjaxURL: ajaxURL, Nonce: nonce, Blocks: make([]scriptBlock, 0, len(blocks))}
	for _, b := range blocks {
		s.Blocks = append(s.Blocks, scriptBlock{
			Name:             b.Name,
			Title:            b.Title,
			ProgrammaticName: b.ProgrammaticName(),
			ShortcodeTag:     b.ShortcodeTag(),
		})
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "편집기 스크립트 설정 직렬화에 실패했습니다")
	}
	return data, nil
}
