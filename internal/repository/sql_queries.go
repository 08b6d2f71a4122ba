package repository

const CreateEmployeesTableSQL = `
CREATE TABLE IF NOT EXISTS employees (
    employee_id TEXT PRIMARY KEY,
    nickname    TEXT NOT NULL
);
`

// Shifts reference employees by id only. Dependent rows are removed by
// DeleteEmployee inside its transaction.
const CreateShiftsTableSQL = `
CREATE TABLE IF NOT EXISTS shifts (
    day         DATE NOT NULL,
    employee_id TEXT NOT NULL,
    start_time  TIME NOT NULL,
    end_time    TIME NOT NULL,
    PRIMARY KEY (day, employee_id)
);
`

const GetShiftsBetweenSQL = `
SELECT
    s.day,
    e.employee_id,
    e.nickname,
    s.start_time,
    s.end_time
FROM
    shifts s
JOIN
    employees e ON s.employee_id = e.employee_id
WHERE
    s.day BETWEEN $1 AND $2
ORDER BY
    s.start_time;
`

const GetShiftsByDaySQL = `
SELECT
    s.day,
    e.employee_id,
    e.nickname,
    s.start_time,
    s.end_time
FROM
    shifts s
JOIN
    employees e ON s.employee_id = e.employee_id
WHERE
    s.day = $1
ORDER BY
    s.start_time, e.employee_id;
`
