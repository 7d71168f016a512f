package main

import (
	"context"
	"fmt"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/spf13/cobra"
)

// commandTimeout 일회성 명령의 최대 실행 시간
const commandTimeout = 2 * time.Minute

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Kit 리소스 캐시를 즉시 갱신합니다",
	Long: `저장된 API 인증 정보로 Kit 계정을 확인하고 폼, 랜딩 페이지, 태그 목록을 다시 받아옵니다.
인증에 실패하면 authorization_failed 알림이 추가됩니다.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

var noticeCmd = &cobra.Command{
	Use:   "notice",
	Short: "관리자 알림을 조회/추가/삭제합니다",
}

var noticeListCmd = &cobra.Command{
	Use:   "list",
	Short: "저장된 관리자 알림을 출력합니다",
	Args:  cobra.NoArgs,
	RunE:  runNoticeList,
}

var noticeAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "관리자 알림을 추가합니다",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoticeAdd,
}

var noticeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "관리자 알림을 삭제합니다",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoticeDelete,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "admin.users[].password_hash에 넣을 bcrypt 해시를 만듭니다",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "빌드 정보를 출력합니다",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	},
}

func init() {
	noticeCmd.AddCommand(noticeListCmd)
	noticeCmd.AddCommand(noticeAddCmd)
	noticeCmd.AddCommand(noticeDeleteCmd)
}

// openApp 일회성 명령을 위해 설정을 읽고 App을 만듭니다. --log-level이 없으면 경고 이상만 기록합니다.
func openApp() (*app.App, error) {
	level := applog.WarnLevel
	if logLevel != "" {
		parsed, err := applog.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	applog.SetLevel(level)

	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("환경설정 로드 실패: %w", err)
	}

	a, err := app.New(appConfig)
	if err != nil {
		return nil, fmt.Errorf("애플리케이션 초기화 실패: %w", err)
	}
	return a, nil
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	if err := a.Refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("리소스 갱신 실패: %w", err)
	}

	forms, err := a.Forms.Get(ctx)
	if err != nil {
		return err
	}
	landingPages, err := a.LandingPages.Get(ctx)
	if err != nil {
		return err
	}
	tags, err := a.Tags.Get(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "forms: %d, landing pages: %d, tags: %d\n", len(forms), len(landingPages), len(tags))
	return nil
}

func runNoticeList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	notices, err := a.Notices.Get(cmd.Context())
	if err != nil {
		return err
	}
	for _, id := range notices {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runNoticeAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Notices.Add(cmd.Context(), args[0])
}

func runNoticeDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	deleted, err := a.Notices.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(cmd.OutOrStdout(), "저장된 알림이 없습니다")
	}
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
