package discord

import "github.com/bwmarrin/discordgo"

func (h *Handler) OnReady(r *discordgo.Ready) {
	h.onReady(nil, r)
}

func (h *Handler) OnMessageCreate(m *discordgo.MessageCreate) {
	h.onMessageCreate(nil, m)
}

func (h *Handler) OnMessageDelete(m *discordgo.MessageDelete) {
	h.onMessageDelete(nil, m)
}

var StateLookup = stateLookup
