package Whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"MaidManager/Constants"
)

// Client talks to the WhatsApp sidecar service that actually delivers
// messages. The sidecar keeps its own device session; SendMessage fails when
// no device is paired.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: Constants.WhatsappGoService,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SendCode delivers an attendance code to a phone number.
func (c *Client) SendCode(phone, code string) error {
	message := fmt.Sprintf("Your My Maid Manager attendance code is %s. It expires in 5 minutes.", code)
	return c.SendMessage(phone, message)
}

func (c *Client) SendMessage(phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/send/message", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp service returned %d: %s", res.StatusCode, body)
	}
	return nil
}

// CheckLogin asks the sidecar whether a WhatsApp device session exists.
func (c *Client) CheckLogin() error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/app/devices", nil)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var output struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Results []struct {
			Name   string `json:"name"`
			Device string `json:"device"`
		} `json:"results"`
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	if len(output.Results) == 0 {
		return fmt.Errorf("not logged in to WhatsApp")
	}
	return nil
}

// Status is the ops endpoint reporting whether code delivery is possible.
func (c *Client) Status(ctx *fiber.Ctx) error {
	if err := c.CheckLogin(); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"message": "WhatsApp session active",
	})
}
