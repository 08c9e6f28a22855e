package bot

// Package bot wires the Telegram transport: inbound handlers for links and
// quality selections, and the Messenger adapter delivering text, edits and
// files over telebot.
