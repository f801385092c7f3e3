package controller

import (
	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	CreateTicket(ctx *fiber.Ctx) error
	GetTicketStatus(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService   service.IChatService
	ticketService service.ITicketService
}

func NewChatController(chatService service.IChatService, ticketService service.ITicketService) IChatController {
	return &chatController{
		chatService:   chatService,
		ticketService: ticketService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/message", c.SendMessage)
	h.Get("/messages", c.GetMessages)
	h.Post("/ticket", c.CreateTicket)
	h.Get("/ticket/:id", c.GetTicketStatus)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	var req dto.GetMessagesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.GetMessages(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) CreateTicket(ctx *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ticketService.CreateTicket(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create ticket", res))
}

func (c *chatController) GetTicketStatus(ctx *fiber.Ctx) error {
	ticketNumber := ctx.Params("id")
	includeDescription := ctx.QueryBool("include_description")

	res, err := c.ticketService.GetTicketStatus(ctx.Context(), ticketNumber, includeDescription)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get ticket status", res))
}
