package impl

import "context"

func (d *dbImpl) LoadSigningKey(ctx context.Context) (string, error) {
	var key string
	err := d.db.QueryRowContext(ctx, "SELECT private_key FROM instance WHERE id = 1").Scan(&key)
	return key, d.HandleError(err)
}
