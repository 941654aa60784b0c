package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/platform/google"
)

const pingTimeout = 800 * time.Millisecond

// Store — адаптер Postgres: хранилище пропусков (apple.Library) и реестр Google Wallet (google.Client)
type Store struct {
	pool     *pgxpool.Pool
	readOnly bool
}

func NewStore(pool *pgxpool.Pool, readOnly bool) *Store {
	return &Store{pool: pool, readOnly: readOnly}
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Library

// Available — хранилище доступно, если база отвечает
func (s *Store) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.pool.Ping(ctx) == nil
}

func (s *Store) CanAddPasses(ctx context.Context) bool {
	return !s.readOnly && s.Available(ctx)
}

// AddPass — вставка пропуска; повтор serial number — ошибка
func (s *Store) AddPass(ctx context.Context, p models.LibraryPass) error {
	cmd := `INSERT INTO ` + tablePasses + ` (` +
		colSerialNumber + `, ` + colPassTypeIdentifier + `, ` + colKind + `, ` + colOrganizationName + `, ` +
		colDescription + `, ` + colWebServiceURL + `, ` + colDescriptor + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := s.pool.Exec(ctx, cmd,
		p.SerialNumber, p.PassTypeIdentifier, string(p.Kind), p.OrganizationName,
		p.Description, p.WebServiceURL, []byte(p.Descriptor),
	)
	if pgCode(err) == pgUniqueViolation {
		return fmt.Errorf("pass %s is already in the library", p.SerialNumber)
	}
	return err
}

const passColumns = colSerialNumber + `, ` + colPassTypeIdentifier + `, ` + colKind + `, ` + colOrganizationName + `, ` +
	colDescription + `, ` + colWebServiceURL + `, ` + colDescriptor + `, ` + colCreatedAt

func scanPass(row pgx.Row) (models.LibraryPass, error) {
	var (
		p    models.LibraryPass
		kind string
		doc  []byte
	)
	if err := row.Scan(&p.SerialNumber, &p.PassTypeIdentifier, &kind, &p.OrganizationName,
		&p.Description, &p.WebServiceURL, &doc, &p.CreatedAt); err != nil {
		return models.LibraryPass{}, err
	}
	p.Kind = models.PassKind(kind)
	p.Descriptor = json.RawMessage(doc)
	return p, nil
}

// Passes — все пропуска в порядке добавления
func (s *Store) Passes(ctx context.Context) ([]models.LibraryPass, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+passColumns+` FROM `+tablePasses+` ORDER BY `+colCreatedAt+`, `+colSerialNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.LibraryPass{}
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindPass — пропуск по serial number или apperrors.ErrNotFound
func (s *Store) FindPass(ctx context.Context, serialNumber string) (models.LibraryPass, error) {
	p, err := scanPass(s.pool.QueryRow(ctx, `SELECT `+passColumns+` FROM `+tablePasses+` WHERE `+colSerialNumber+`=$1`, serialNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.LibraryPass{}, apperrors.ErrNotFound
	}
	return p, err
}

// Google registry

// InsertClass — повторная вставка класса не ошибка, как 409 в Wallet API
func (s *Store) InsertClass(ctx context.Context, c models.GoogleWalletClass) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO `+tableGoogleClasses+` (`+colID+`, `+colIssuerName+`, `+colBody+`)
            VALUES ($1,$2,$3) ON CONFLICT (`+colID+`) DO NOTHING`, c.ID, c.IssuerName, body)
	return err
}

func (s *Store) InsertObject(ctx context.Context, o models.GoogleWalletObject) error {
	body, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO `+tableGoogleObjects+` (`+colID+`, `+colClassID+`, `+colState+`, `+colBody+`)
            VALUES ($1,$2,$3,$4) ON CONFLICT (`+colID+`) DO NOTHING`, o.ID, o.ClassID, string(o.State), body)
	if pgCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("class %s does not exist", o.ClassID)
	}
	return err
}

func decodeObject(body []byte) (models.GoogleWalletObject, error) {
	var o models.GoogleWalletObject
	if err := json.Unmarshal(body, &o); err != nil {
		return models.GoogleWalletObject{}, err
	}
	return o, nil
}

func (s *Store) GetObject(ctx context.Context, id string) (models.GoogleWalletObject, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT `+colBody+` FROM `+tableGoogleObjects+` WHERE `+colID+`=$1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.GoogleWalletObject{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	return decodeObject(body)
}

// PatchObject накладывает patch на тело объекта в одной транзакции; state дублируется в колонку.
// Тело, которое не декодируется обратно в объект, не записывается.
func (s *Store) PatchObject(ctx context.Context, id string, patch map[string]any) (models.GoogleWalletObject, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var body []byte
	err = tx.QueryRow(ctx, `SELECT `+colBody+` FROM `+tableGoogleObjects+` WHERE `+colID+`=$1 FOR UPDATE`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.GoogleWalletObject{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	current, err := decodeObject(body)
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	next, err := google.ApplyPatch(current, patch)
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return models.GoogleWalletObject{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE `+tableGoogleObjects+`
            SET `+colBody+` = $2::jsonb,
                `+colState+` = $3,
                `+colUpdatedAt+` = now()
            WHERE `+colID+`=$1`, id, raw, string(next.State)); err != nil {
		return models.GoogleWalletObject{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.GoogleWalletObject{}, err
	}
	return next, nil
}

func (s *Store) ExpireObject(ctx context.Context, id string) error {
	_, err := s.PatchObject(ctx, id, map[string]any{"state": string(models.StateExpired)})
	return err
}

// ListObjects — объекты вместе с именем эмитента класса
func (s *Store) ListObjects(ctx context.Context) ([]google.ObjectEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT o.`+colBody+`, c.`+colIssuerName+`
            FROM `+tableGoogleObjects+` o JOIN `+tableGoogleClasses+` c ON c.`+colID+` = o.`+colClassID+`
            ORDER BY o.`+colCreatedAt+`, o.`+colID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []google.ObjectEntry{}
	for rows.Next() {
		var (
			body   []byte
			issuer string
		)
		if err := rows.Scan(&body, &issuer); err != nil {
			return nil, err
		}
		o, err := decodeObject(body)
		if err != nil {
			return nil, err
		}
		out = append(out, google.ObjectEntry{Object: o, IssuerName: issuer})
	}
	return out, rows.Err()
}
