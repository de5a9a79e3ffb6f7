package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

const messageLinkColumns = `id, guild_link_id, channel_link_id, discord_message_id, fluxer_message_id, created_at`

func (db *DB) CreateMessageLink(ctx context.Context, guildLinkID, channelLinkID, discordMessageID, fluxerMessageID string) (*links.MessageLink, error) {
	link := &links.MessageLink{
		ID:               uuid.New().String(),
		GuildLinkID:      guildLinkID,
		ChannelLinkID:    channelLinkID,
		DiscordMessageID: discordMessageID,
		FluxerMessageID:  fluxerMessageID,
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO message_links (id, guild_link_id, channel_link_id, discord_message_id, fluxer_message_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, link.ID, link.GuildLinkID, link.ChannelLinkID, link.DiscordMessageID, link.FluxerMessageID).Scan(&link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message link: %w", mapUniqueViolation(err))
	}

	return link, nil
}

func (db *DB) GetMessageLinkByID(ctx context.Context, id string) (*links.MessageLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM message_links WHERE id = $1`, messageLinkColumns)

	return db.scanMessageLink(db.Pool.QueryRow(ctx, query, id))
}

func (db *DB) GetMessageLinkByMessageID(ctx context.Context, side links.Side, messageID string) (*links.MessageLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM message_links WHERE %s = $1`, messageLinkColumns, messageColumn(side))

	return db.scanMessageLink(db.Pool.QueryRow(ctx, query, messageID))
}

func (db *DB) DeleteMessageLink(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM message_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete message link: %w", err)
	}

	return nil
}

func (db *DB) DeleteMessageLinksByChannelLink(ctx context.Context, channelLinkID string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM message_links WHERE channel_link_id = $1`, channelLinkID); err != nil {
		return fmt.Errorf("delete message links by channel link: %w", err)
	}

	return nil
}

func (db *DB) DeleteMessageLinksByGuildLink(ctx context.Context, guildLinkID string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM message_links WHERE guild_link_id = $1`, guildLinkID); err != nil {
		return fmt.Errorf("delete message links by guild link: %w", err)
	}

	return nil
}

func (db *DB) scanMessageLink(row pgx.Row) (*links.MessageLink, error) {
	var link links.MessageLink

	err := row.Scan(&link.ID, &link.GuildLinkID, &link.ChannelLinkID, &link.DiscordMessageID, &link.FluxerMessageID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("scan message link: %w", err)
	}

	return &link, nil
}
