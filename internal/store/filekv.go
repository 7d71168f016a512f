package store

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/pkg/concurrency"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "store"

const (
	fileExt         = ".json"
	tempFilePattern = "kv-*.tmp"

	// staleTempFileAge 이보다 오래된 임시 파일은 이전 실행의 잔존 파일로 간주하여 삭제합니다.
	staleTempFileAge = time.Hour
)

// fileKV 키마다 하나의 JSON 파일을 사용하는 KV입니다.
//
// 키 "option/_wp_convertkit_settings"는 "<baseDir>/option/_wp_convertkit_settings.json"에 저장됩니다.
// 각 세그먼트는 URL 경로 이스케이프를 거치며, 결과 경로가 baseDir을 벗어나면 거부됩니다.
type fileKV struct {
	baseDir string

	// locks 같은 파일에 대한 읽기/쓰기를 직렬화합니다. 키는 소문자로 정규화한 파일 경로입니다.
	locks *concurrency.KeyedMutex[string]
}

// NewFileKV dir 아래에 값을 저장하는 KV를 생성합니다.
// 디렉토리를 미리 만들어 권한 문제를 조기에 발견하고, 이전 실행에서 남은 임시 파일을 백그라운드에서 정리합니다.
func NewFileKV(dir string) (KV, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "저장소 초기화 실패: 절대 경로 변환 불가")
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "저장소 초기화 실패: 디렉토리 접근 불가 (%s)", absDir)
	}

	kv := &fileKV{
		baseDir: absDir,
		locks:   concurrency.NewKeyedMutex[string](),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"base_dir": absDir,
					"panic":    r,
				}).Error("임시 파일 정리 중단: 백그라운드 작업 패닉 발생")
			}
		}()

		kv.cleanupStaleTempFiles()
	}()

	return kv, nil
}

// NewFileStore dir 아래에 JSON 파일로 저장하는 Store를 생성합니다.
func NewFileStore(dir string) (Store, error) {
	kv, err := NewFileKV(dir)
	if err != nil {
		return nil, err
	}
	return NewKVStore(kv), nil
}

func (s *fileKV) cleanupStaleTempFiles() {
	threshold := time.Now().Add(-staleTempFileAge)

	_ = filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if matched, _ := filepath.Match(tempFilePattern, d.Name()); !matched {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(threshold) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  path,
				"error": err,
			}).Warn("임시 파일 삭제 실패")
		} else {
			applog.WithComponentAndFields(component, applog.Fields{
				"file": path,
			}).Info("이전 실행에서 남은 임시 파일을 삭제하였습니다")
		}
		return nil
	})
}

// resolveSafePath 키를 baseDir 하위의 파일 경로로 변환합니다.
func (s *fileKV) resolveSafePath(key string) (string, error) {
	segments := strings.Split(key, "/")
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, s.baseDir)
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", s.traversalDetected(key)
		}
		parts = append(parts, url.PathEscape(seg))
	}

	cleanPath := filepath.Clean(filepath.Join(parts...) + fileExt)

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Internal, "보안 검증 실패: 파일 경로를 해석할 수 없습니다")
	}
	if strings.HasPrefix(rel, "..") {
		return "", s.traversalDetected(key)
	}

	return cleanPath, nil
}

func (s *fileKV) traversalDetected(key string) error {
	applog.WithComponentAndFields(component, applog.Fields{
		"key":      key,
		"base_dir": s.baseDir,
	}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

	return ErrPathTraversalDetected
}

func (s *fileKV) Load(key string) ([]byte, error) {
	filename, err := s.resolveSafePath(key)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.locks.WithLock(strings.ToLower(filename), func() error {
		var readErr error
		data, readErr = os.ReadFile(filename)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				return ErrNotFound
			}
			return readErr
		}
		return nil
	})
	return data, err
}

func (s *fileKV) Save(key string, data []byte) error {
	filename, err := s.resolveSafePath(key)
	if err != nil {
		return err
	}

	return s.locks.WithLock(strings.ToLower(filename), func() error {
		return writeAtomic(filename, data)
	})
}

func (s *fileKV) Delete(key string) error {
	filename, err := s.resolveSafePath(key)
	if err != nil {
		return err
	}

	return s.locks.WithLock(strings.ToLower(filename), func() error {
		if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

func (s *fileKV) Keys(prefix string) ([]string, error) {
	root := s.baseDir
	if idx := strings.LastIndex(prefix, "/"); idx != -1 {
		dir, err := s.resolveSafePath(prefix[:idx])
		if err != nil {
			return nil, err
		}
		root = strings.TrimSuffix(dir, fileExt)
	}

	var keys []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), fileExt) {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, strings.TrimSuffix(path, fileExt))
		if err != nil {
			return err
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")
		for i, seg := range segments {
			if unescaped, err := url.PathUnescape(seg); err == nil {
				segments[i] = unescaped
			}
		}

		if key := strings.Join(segments, "/"); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *fileKV) Close() error {
	return nil
}

// writeAtomic 같은 디렉토리의 임시 파일에 쓰고 fsync한 뒤 rename하여, 저장 도중 장애가 나도
// 기존 파일이 깨지지 않도록 합니다.
func writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	// Windows는 열린 파일을 삭제할 수 없으므로 Close가 Remove보다 먼저 실행되어야 한다.
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := renameWithRetry(tmpPath, filename); err != nil {
		return err
	}

	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		dirFile.Close()
	}

	return nil
}

// renameWithRetry 백신, 인덱서 등이 파일을 잠시 점유하는 개발 환경(Windows)을 위해 짧게 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxRetries = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxRetries {
		if err := os.Rename(oldPath, newPath); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(retryDelay)
	}
	return lastErr
}
