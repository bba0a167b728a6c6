package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/service"
)

func employeeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "employee [idNumber]",
		Short: "Look an employee up in SAP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			employee, result := svc.GetEmployee(cmd.Context(), args[0])
			if err := printJSON(cmd, map[string]any{
				"success":  result.Success,
				"employee": employee,
				"message":  result.Message,
			}); err != nil {
				return err
			}
			if !result.Success {
				return errFailed
			}
			return nil
		},
	}
}

func pictureCmd(opts *options) *cobra.Command {
	var idNum, cardNum, file string

	cmd := &cobra.Command{
		Use:   "picture",
		Short: "Upload an employee picture to SAP",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read picture: %w", err)
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}

			result := svc.UpdatePicture(cmd.Context(), domain.PictureUpdateRequest{
				IdNum:   idNum,
				CardNum: cardNum,
				Picture: base64.StdEncoding.EncodeToString(data),
			})
			return report(cmd, result, result)
		},
	}

	cmd.Flags().StringVar(&idNum, "id", "", "Employee ID number")
	cmd.Flags().StringVar(&cardNum, "card", "", "Card number")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JPEG file to upload")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("file")

	return cmd
}

func smsCmd(opts *options) *cobra.Command {
	var to, message string

	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send an SMS through the BOI SMS service",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			result := svc.SendSms(cmd.Context(), domain.SmsRequest{ToNumbers: to, Message: message})
			return report(cmd, result.Result, result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient numbers, comma separated")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message text")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("message")

	return cmd
}

func callbackCmd(opts *options) *cobra.Command {
	var (
		operation string
		cardData  string
		id        int
		issuer    string
	)

	cmd := &cobra.Command{
		Use:   "callback",
		Short: "Run a CCMS callback locally against the configured backends",
		Long: `Run the create-or-update sequence exactly as POST /<route>/process would.
--card-data is a JSON file holding the CardData object, or - for stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := domain.ParseOperation(operation)
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, cardData)
			if err != nil {
				return err
			}

			attrs, err := domain.ParseAttributeMap(string(raw))
			if err != nil {
				return fmt.Errorf("failed to read card data: %w", err)
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}

			result := svc.HandleCallback(cmd.Context(), service.Callback{
				ID:         id,
				Operation:  op,
				Issuer:     issuer,
				Attributes: attrs,
			})
			return report(cmd, result, result)
		},
	}

	cmd.Flags().StringVarP(&operation, "operation", "o", "UPDATE", "Operation name or code")
	cmd.Flags().StringVar(&cardData, "card-data", "", "CardData JSON file, - for stdin")
	cmd.Flags().IntVar(&id, "id", 0, "Callback ID used in logs")
	cmd.Flags().StringVar(&issuer, "issuer", "boictl", "Issuer reported in logs")
	cmd.MarkFlagRequired("card-data")

	return cmd
}

func fieldsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the effective card field mapping as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(map[string]any{"card_fields": cfg.Boi.CardFields})
		},
	}
}

// report prints v and turns a failed result into a non-zero exit
func report(cmd *cobra.Command, result domain.Result, v any) error {
	if err := printJSON(cmd, v); err != nil {
		return err
	}
	if !result.Success {
		return errFailed
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
