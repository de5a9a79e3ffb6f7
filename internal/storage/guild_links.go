package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

func (db *DB) CreateGuildLink(ctx context.Context, discordGuildID, fluxerGuildID string) (*links.GuildLink, error) {
	link := &links.GuildLink{
		ID:             uuid.New().String(),
		DiscordGuildID: discordGuildID,
		FluxerGuildID:  fluxerGuildID,
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO guild_links (id, discord_guild_id, fluxer_guild_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, link.ID, discordGuildID, fluxerGuildID).Scan(&link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create guild link: %w", mapUniqueViolation(err))
	}

	return link, nil
}

func (db *DB) GetGuildLinkByID(ctx context.Context, id string) (*links.GuildLink, error) {
	return db.scanGuildLink(db.Pool.QueryRow(ctx, `
		SELECT id, discord_guild_id, fluxer_guild_id, created_at
		FROM guild_links
		WHERE id = $1
	`, id))
}

func (db *DB) GetGuildLinkByGuildID(ctx context.Context, side links.Side, guildID string) (*links.GuildLink, error) {
	query := fmt.Sprintf(`
		SELECT id, discord_guild_id, fluxer_guild_id, created_at
		FROM guild_links
		WHERE %s = $1
	`, guildColumn(side))

	return db.scanGuildLink(db.Pool.QueryRow(ctx, query, guildID))
}

func (db *DB) DeleteGuildLink(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM guild_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete guild link: %w", err)
	}

	return nil
}

func (db *DB) scanGuildLink(row pgx.Row) (*links.GuildLink, error) {
	var link links.GuildLink

	err := row.Scan(&link.ID, &link.DiscordGuildID, &link.FluxerGuildID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("scan guild link: %w", err)
	}

	return &link, nil
}
