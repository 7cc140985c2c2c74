// ABOUTME: Settings CLI commands
// ABOUTME: Commands for showing and changing the webhook connection settings
package cli

import (
	"fmt"

	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/sheet"
)

// ConfigShowCommand prints the current settings
func ConfigShowCommand(settings *config.Settings) error {
	webhook := settings.WebhookURL
	if webhook == "" {
		webhook = "(not set)"
	}
	view := settings.SheetViewURL
	if view == "" {
		view = "(not set)"
	}

	fmt.Printf("Webhook URL:    %s\n", webhook)
	fmt.Printf("Sheet view URL: %s\n", view)

	if !settings.Connected() {
		fmt.Println("\nNot connected. Run 'cardsnap config script' to get the Apps Script,")
		fmt.Println("deploy it as a web app, then run 'cardsnap config set-webhook <url>'.")
	}
	return nil
}

// ConfigSetWebhookCommand stores the Apps Script web app URL
func ConfigSetWebhookCommand(settings *config.Settings, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("webhook URL is required")
	}
	if err := settings.SetWebhookURL(args[0]); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Webhook URL saved.")
	return nil
}

// ConfigSetViewCommand stores the spreadsheet's viewing URL
func ConfigSetViewCommand(settings *config.Settings, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sheet URL is required")
	}
	if err := settings.SetSheetViewURL(args[0]); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Sheet view URL saved.")
	return nil
}

// ConfigScriptCommand prints the Google Apps Script to paste into the
// sheet's script editor
func ConfigScriptCommand() error {
	fmt.Println(sheet.AppsScript())
	return nil
}
