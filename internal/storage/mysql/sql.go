package mysql

const insertBookingsPrefix = "INSERT INTO bookings\n" +
	"  (source_row, hotel, arrival_year, arrival_month, country, lead_time, is_canceled, adr, total_nights, total_guests)\nVALUES "

// bookingPlaceholders matches the column list above.
const bookingPlaceholders = "(?,?,?,?,?,?,?,?,?,?)"

// Re-ingesting a file overwrites rows in place; VALUES(col) for broad compatibility.
const insertBookingsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  hotel         = VALUES(hotel),\n" +
	"  arrival_year  = VALUES(arrival_year),\n" +
	"  arrival_month = VALUES(arrival_month),\n" +
	"  country       = VALUES(country),\n" +
	"  lead_time     = VALUES(lead_time),\n" +
	"  is_canceled   = VALUES(is_canceled),\n" +
	"  adr           = VALUES(adr),\n" +
	"  total_nights  = VALUES(total_nights),\n" +
	"  total_guests  = VALUES(total_guests),\n" +
	"  updated_at    = CURRENT_TIMESTAMP\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Source order keeps seeded sampling identical to the CSV path.
const listBookingsSQL = `
SELECT
  hotel,
  arrival_year,
  arrival_month,
  country,
  lead_time,
  is_canceled,
  adr,
  total_nights,
  total_guests
FROM bookings
ORDER BY source_row
`

const countBookingsSQL = `SELECT COUNT(*) FROM bookings`
