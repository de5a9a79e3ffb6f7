package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

const channelLinkColumns = `id, guild_link_id, discord_channel_id, fluxer_channel_id,
		discord_webhook_id, discord_webhook_token, fluxer_webhook_id, fluxer_webhook_token,
		short_link_id, created_at`

func (db *DB) CreateChannelLink(ctx context.Context, params links.CreateChannelLinkParams) (*links.ChannelLink, error) {
	link := &links.ChannelLink{
		ID:               uuid.New().String(),
		GuildLinkID:      params.GuildLinkID,
		DiscordChannelID: params.DiscordChannelID,
		FluxerChannelID:  params.FluxerChannelID,
		DiscordWebhook:   params.DiscordWebhook,
		FluxerWebhook:    params.FluxerWebhook,
		ShortID:          params.ShortID,
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO channel_links (
			id, guild_link_id, discord_channel_id, fluxer_channel_id,
			discord_webhook_id, discord_webhook_token, fluxer_webhook_id, fluxer_webhook_token,
			short_link_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, link.ID, link.GuildLinkID, link.DiscordChannelID, link.FluxerChannelID,
		link.DiscordWebhook.ID, link.DiscordWebhook.Token,
		link.FluxerWebhook.ID, link.FluxerWebhook.Token,
		link.ShortID).Scan(&link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create channel link: %w", mapUniqueViolation(err))
	}

	return link, nil
}

func (db *DB) GetChannelLinkByID(ctx context.Context, id string) (*links.ChannelLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_links WHERE id = $1`, channelLinkColumns)

	return db.scanChannelLink(db.Pool.QueryRow(ctx, query, id))
}

func (db *DB) GetChannelLinkByChannelID(ctx context.Context, side links.Side, channelID string) (*links.ChannelLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_links WHERE %s = $1`, channelLinkColumns, channelColumn(side))

	return db.scanChannelLink(db.Pool.QueryRow(ctx, query, channelID))
}

func (db *DB) GetChannelLinkByShortID(ctx context.Context, guildLinkID, shortID string) (*links.ChannelLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_links WHERE guild_link_id = $1 AND short_link_id = $2`, channelLinkColumns)

	return db.scanChannelLink(db.Pool.QueryRow(ctx, query, guildLinkID, shortID))
}

func (db *DB) ListChannelLinksByGuildLink(ctx context.Context, guildLinkID string) ([]*links.ChannelLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_links WHERE guild_link_id = $1 ORDER BY created_at`, channelLinkColumns)

	rows, err := db.Pool.Query(ctx, query, guildLinkID)
	if err != nil {
		return nil, fmt.Errorf("query channel links: %w", err)
	}
	defer rows.Close()

	var all []*links.ChannelLink

	for rows.Next() {
		link, err := scanChannelLinkRow(rows)
		if err != nil {
			return nil, err
		}

		all = append(all, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel link rows: %w", err)
	}

	return all, nil
}

func (db *DB) DeleteChannelLink(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM channel_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete channel link: %w", err)
	}

	return nil
}

func (db *DB) DeleteChannelLinksByGuildLink(ctx context.Context, guildLinkID string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM channel_links WHERE guild_link_id = $1`, guildLinkID); err != nil {
		return fmt.Errorf("delete channel links by guild link: %w", err)
	}

	return nil
}

func (db *DB) scanChannelLink(row pgx.Row) (*links.ChannelLink, error) {
	link, err := scanChannelLinkRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return link, nil
}

func scanChannelLinkRow(row pgx.Row) (*links.ChannelLink, error) {
	var link links.ChannelLink

	err := row.Scan(
		&link.ID, &link.GuildLinkID, &link.DiscordChannelID, &link.FluxerChannelID,
		&link.DiscordWebhook.ID, &link.DiscordWebhook.Token,
		&link.FluxerWebhook.ID, &link.FluxerWebhook.Token,
		&link.ShortID, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("scan channel link: %w", err)
	}

	return &link, nil
}
