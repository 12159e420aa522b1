package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/config"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/Veraticus/museum-pulse/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export labeled reviews to Google Sheets",
		Long: `Write the filtered labeled reviews to a "Reviews" tab and the overview
page to an "Overview" tab of a Google spreadsheet.

Authentication uses either a service account (sheets.service_account_path)
or OAuth2 (sheets.client_id, sheets.client_secret and a refresh token from
'pulse export auth').`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("spreadsheet-id", "", "Existing spreadsheet to write to (default: create one)")
	cmd.Flags().String("spreadsheet-name", "", "Title for a newly created spreadsheet")

	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))
	_ = viper.BindPFlag("sheets.spreadsheet_name", cmd.Flags().Lookup("spreadsheet-name"))

	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loadStoredRefreshToken()
	sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return common.NewUserError("Google Sheets is not configured; run 'pulse export auth' or set sheets.service_account_path", err)
	}

	store, err := openStore(ctx, cfg, true)
	if err != nil {
		return err
	}
	view := store.Current().Filter(filterFromFlags(cmd))
	overview := report.Build(view, report.Options{Page: report.PageOverview, TopN: cfg.Report.TopN}).Overview

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}
	spreadsheetID, err := writer.Export(ctx, view, overview)
	if err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Exported %d reviews", len(view))),
		"url", "https://docs.google.com/spreadsheets/d/"+spreadsheetID)
	return nil
}

// loadStoredRefreshToken fills sheets.refresh_token from the token file
// written by 'pulse export auth' when no token is configured.
func loadStoredRefreshToken() {
	if viper.GetString("sheets.refresh_token") != "" || os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN") != "" {
		return
	}
	token, err := sheets.LoadToken(tokenFile())
	if err != nil {
		slog.Debug("No stored Google Sheets token", "error", err)
		return
	}
	if token.RefreshToken != "" {
		viper.Set("sheets.refresh_token", token.RefreshToken)
	}
}

func tokenFile() string {
	if f := viper.GetString("sheets.token_file"); f != "" {
		return config.ExpandPath(f)
	}
	return filepath.Join(config.Dir(), "sheets-token.json")
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Sheets access with OAuth2",
		Long: `Run the OAuth2 consent flow in your browser and store the refresh token.

Requires sheets.client_id and sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID
and GOOGLE_SHEETS_CLIENT_SECRET).`,
		RunE: runExportAuth,
	}

	cmd.Flags().String("callback-addr", sheets.DefaultCallbackAddr, "Address for the OAuth2 redirect listener")

	return cmd
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	clientID := viper.GetString("sheets.client_id")
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	clientSecret := viper.GetString("sheets.client_secret")
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return common.NewUserError("missing OAuth2 client credentials", common.ErrMissingConfig)
	}

	callbackAddr, _ := cmd.Flags().GetString("callback-addr")
	token, err := sheets.Authorize(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile(),
		CallbackAddr: callbackAddr,
	}, func(url string) {
		slog.Info(cli.RenderBox("Google Sheets Authorization",
			"Open this URL in your browser:\n\n"+url))
	})
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	if token.RefreshToken == "" {
		slog.Warn(cli.FormatWarning("No refresh token returned; revoke the app's access and try again"))
		return nil
	}

	slog.Info(cli.FormatSuccess("Google Sheets authorized"), "token_file", tokenFile())
	return nil
}
