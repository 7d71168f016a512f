package main

import (
	"fmt"
	"os"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/spf13/cobra"
)

// @title ConvertKit Admin API
// @version 1.0.0
// @description ConvertKit(Kit) 연동 관리 화면 서버의 상태 확인 및 편집기 AJAX API입니다.
// @description
// @description ## 인증 방법
// @description /wp-admin 아래의 모든 경로는 HTTP Basic 인증이 필요합니다.
// @description 설정 파일(convertkit-admin.json)의 admin.users에 사용자를 등록한 후 사용하세요.
// @description 비밀번호 해시는 'convertkit-admin hash-password' 명령으로 만들 수 있습니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.basic BasicAuth

const banner = `
   ____                          _   _  ___ _        _       _           _
  / ___|___  _ ____   _____ _ __| |_| |/ (_) |_     / \   __| |_ __ ___ (_)_ __
 | |   / _ \| '_ \ \ / / _ \ '__| __| ' /| | __|   / _ \ / _' | '_ ' _ \| | '_ \
 | |__| (_) | | | \ V /  __/ |  | |_| . \| | |_   / ___ \ (_| | | | | | | | | | |
  \____\___/|_| |_|\_/ \___|_|   \__|_|\_\_|\__| /_/   \_\__,_|_| |_| |_|_|_| |_|
                                                                        %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`

// 전역 플래그 값
var (
	configFile string
	logLevel   string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "ConvertKit 연동 관리 화면 서버",
		Long: `ConvertKit(Kit) 계정의 폼, 랜딩 페이지, 태그를 게시물에 연결하는 관리 화면 서버입니다.

Available subcommands:
  serve         - 관리 화면과 공개 페이지 웹 서버를 실행합니다
  refresh       - Kit 리소스 캐시를 즉시 갱신합니다
  notice        - 관리자 알림을 조회/추가/삭제합니다
  hash-password - 설정 파일에 넣을 비밀번호 해시를 만듭니다
  version       - 빌드 정보를 출력합니다`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultFilename, "설정 파일 경로")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (trace, debug, info, warn, error). 비어 있으면 실행 환경에 맞는 기본값을 사용합니다")

	cmd.AddCommand(serveCmd)
	cmd.AddCommand(refreshCmd)
	cmd.AddCommand(noticeCmd)
	cmd.AddCommand(hashPasswordCmd)
	cmd.AddCommand(versionCmd)

	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}
